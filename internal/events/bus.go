package events

import "sync"

// Handler обработчик доменного события
type Handler func(event AppointmentEvent)

// Bus синхронная in-process шина доменных событий.
// Subscribe возвращает функцию отписки. Доставка выполняется в горутине
// публикующего - обработчики должны быть быстрыми и не блокировать.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewBus создает новую шину событий
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
	}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish доставляет событие всем текущим подписчикам
func (b *Bus) Publish(event AppointmentEvent) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
