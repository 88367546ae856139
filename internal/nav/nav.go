package nav

import (
	"sync"

	"inflight/internal/routes"
)

// Params параметры экрана, извлечённые из ссылки или переданные кодом
type Params map[string]string

// Entry элемент навигационного стека
type Entry struct {
	Screen routes.Screen
	Params Params
}

// Stack единственный разделяемый навигационный стек приложения.
// Все переходы синхронны с точки зрения вызывающего; подписчики
// уведомляются после каждого перехода.
type Stack struct {
	mu      sync.Mutex
	entries []Entry
	subs    []func(Entry)
}

// New создаёт стек с корневым экраном
func New(root routes.Screen) *Stack {
	return &Stack{entries: []Entry{{Screen: root, Params: Params{}}}}
}

// Navigate кладёт новый экран на вершину стека
func (s *Stack) Navigate(screen routes.Screen, params Params) {
	if params == nil {
		params = Params{}
	}
	s.mu.Lock()
	s.entries = append(s.entries, Entry{Screen: screen, Params: params})
	top := s.entries[len(s.entries)-1]
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, top)
}

// ReplaceRoot подменяет дно стека (после входа, чтобы «назад» не вёл на
// экран логина)
func (s *Stack) ReplaceRoot(screen routes.Screen) {
	s.mu.Lock()
	s.entries[0] = Entry{Screen: screen, Params: Params{}}
	top := s.entries[len(s.entries)-1]
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, top)
}

// ResetTo очищает стек до единственного экрана (выход из аккаунта)
func (s *Stack) ResetTo(screen routes.Screen) {
	s.mu.Lock()
	s.entries = []Entry{{Screen: screen, Params: Params{}}}
	top := s.entries[0]
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, top)
}

// Back снимает верхний экран; на корне — no-op
func (s *Stack) Back() {
	s.mu.Lock()
	if len(s.entries) > 1 {
		s.entries = s.entries[:len(s.entries)-1]
	}
	top := s.entries[len(s.entries)-1]
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, top)
}

// Current текущий (верхний) экран
func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

// Depth глубина стека
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Subscribe регистрирует подписчика переходов
func (s *Stack) Subscribe(fn func(Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Stack) subscribers() []func(Entry) {
	out := make([]func(Entry), len(s.subs))
	copy(out, s.subs)
	return out
}

func notify(subs []func(Entry), e Entry) {
	for _, fn := range subs {
		fn(e)
	}
}
