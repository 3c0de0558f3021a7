package gift

import "sync"

// accountLocker アカウントID単位の排他制御
// 同一アカウントの受け取り処理を直列化し、読み出しと保存の間の
// 競合による二重受け取りを防ぐ。異なるアカウント同士は並行して進められる
type accountLocker struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocker() *accountLocker {
	return &accountLocker{
		entries: make(map[string]*lockEntry),
	}
}

// Lock アカウントのロックを取得し、解放用の関数を返す
// 待機中のゴルーチンがいなくなったエントリは解放時にマップから除去する
func (l *accountLocker) Lock(accountID string) func() {
	l.mu.Lock()
	e, ok := l.entries[accountID]
	if !ok {
		e = &lockEntry{}
		l.entries[accountID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, accountID)
		}
		l.mu.Unlock()
	}
}
