// Package keymutex даёт мьютекс на каждый ключ: операции с одним ключом
// сериализуются, с разными ключами идут параллельно.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*entry),
	}
}

// Lock захватывает ключ и возвращает функцию освобождения.
// Запись о ключе удаляется, когда им больше никто не пользуется.
func (k *KeyMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len возвращает число ключей, которые сейчас захвачены или ожидаются.
func (k *KeyMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
