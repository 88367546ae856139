// Package cart содержит машину состояний корзины: упорядоченный список
// позиций с ключом по идентификатору товара и снимок в локальном
// хранилище после каждой мутации.
package cart

import (
	"sync"

	"go.uber.org/zap"

	"inflight/internal/domain"
)

// Store хранилище снимков корзины. Каждая запись — полная перезапись.
type Store interface {
	Save(items []domain.OrderItem) error
	Load() ([]domain.OrderItem, error)
}

// Cart корзина текущего процесса. Память — единственный источник истины:
// сбой записи снимка логируется и проглатывается, состояние не откатывается.
type Cart struct {
	mu    sync.Mutex
	items []domain.OrderItem
	store Store
	log   *zap.Logger
	subs  []func([]domain.OrderItem)
	wg    sync.WaitGroup

	// записи снимков сериализуются; устаревший снимок на диск не попадает
	writeMu  sync.Mutex
	seq      int
	savedSeq int
}

// New загружает последний снимок. Отсутствующие или битые данные дают
// пустую корзину, а не падение при старте.
func New(store Store, log *zap.Logger) *Cart {
	c := &Cart{store: store, log: log}
	items, err := store.Load()
	if err != nil {
		log.Warn("cart snapshot load failed, starting empty", zap.Error(err))
		return c
	}
	c.items = items
	return c
}

// Add добавляет позицию. Для уже известного товара количество
// суммируется, остальные поля строки (включая цену) сохраняются от
// первого добавления.
func (c *Cart) Add(item domain.OrderItem) {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, item)
	}
	c.afterMutation()
	c.mu.Unlock()
}

// Remove удаляет строку товара; отсутствующий товар — no-op
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.afterMutation()
			break
		}
	}
	c.mu.Unlock()
}

// SetQuantity заменяет количество. Значения меньше 1 молча игнорируются:
// для удаления строки есть Remove.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			c.afterMutation()
			break
		}
	}
	c.mu.Unlock()
}

// Clear опустошает корзину
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.afterMutation()
	c.mu.Unlock()
}

// Items копия позиций в порядке добавления
func (c *Cart) Items() []domain.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

// Len число строк корзины
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total сумма цена×количество по всем строкам. Округление — забота
// форматтера отображения.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Subscribe регистрирует подписчика изменений корзины
func (c *Cart) Subscribe(fn func([]domain.OrderItem)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Close дожидается завершения отложенных записей снимка
func (c *Cart) Close() {
	c.wg.Wait()
}

// afterMutation вызывается под мьютексом: рассылает уведомления и
// асинхронно пишет полный снимок. Каждая мутация получает номер; запись
// выполняется под отдельным мьютексом, и снимок старее уже записанного
// пропускается — медленная ранняя запись не перетирает позднюю.
func (c *Cart) afterMutation() {
	snapshot := c.copyItems()
	for _, fn := range c.subs {
		fn(snapshot)
	}
	c.seq++
	seq := c.seq
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		if seq <= c.savedSeq {
			return // на диске уже более новый снимок
		}
		c.savedSeq = seq
		if err := c.store.Save(snapshot); err != nil {
			c.log.Warn("cart snapshot save failed", zap.Error(err))
		}
	}()
}

func (c *Cart) copyItems() []domain.OrderItem {
	out := make([]domain.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}
