// Package observe — типизированное наблюдаемое значение. Заменяет
// глобальные синглтоны «текущая тема/язык/сессия»: значения создаются в
// корне приложения и передаются вниз явно.
package observe

import "sync"

// Value хранит текущее значение и уведомляет подписчиков о замене
type Value[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, subs: make(map[int]func(T))}
}

// Get текущее значение
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set заменяет значение и уведомляет подписчиков
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()
	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe регистрирует подписчика; возвращённая функция снимает подписку
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
