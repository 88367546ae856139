package cart

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"inflight/internal/domain"
)

// fakeStore потокобезопасная запись снимков для проверок
type fakeStore struct {
	mu       sync.Mutex
	saves    [][]domain.OrderItem
	initial  []domain.OrderItem
	loadErr  error
	saveErr  error
	delayFor func([]domain.OrderItem) time.Duration
}

func (f *fakeStore) Save(items []domain.OrderItem) error {
	if f.delayFor != nil {
		time.Sleep(f.delayFor(items))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, items)
	return nil
}

func (f *fakeStore) Load() ([]domain.OrderItem, error) {
	return f.initial, f.loadErr
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStore) lastSave() []domain.OrderItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

func setup(t *testing.T) (*Cart, *fakeStore) {
	t.Helper()
	fs := &fakeStore{}
	return New(fs, zap.NewNop()), fs
}

func item(id string, price float64, qty int) domain.OrderItem {
	return domain.OrderItem{ProductID: id, Name: "item-" + id, Price: price, Quantity: qty}
}

func TestAddMergesByProductID(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("1", 100, 1))
	c.Add(domain.OrderItem{ProductID: "1", Name: "другая карточка", Price: 999, Quantity: 2})

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected single line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	// цена и имя остаются от первого добавления
	if items[0].Price != 100 || items[0].Name != "item-1" {
		t.Fatalf("first write must win: %+v", items[0])
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("b", 10, 1))
	c.Add(item("a", 20, 1))
	c.Add(item("b", 10, 1))
	items := c.Items()
	if len(items) != 2 || items[0].ProductID != "b" || items[1].ProductID != "a" {
		t.Fatalf("insertion order broken: %v", items)
	}
}

func TestSetQuantityBelowOneIgnored(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("1", 100, 2))
	c.SetQuantity("1", 0)
	c.SetQuantity("1", -5)
	if got := c.Items()[0].Quantity; got != 2 {
		t.Fatalf("quantity must stay 2, got %d", got)
	}
	c.SetQuantity("1", 7)
	if got := c.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c, fs := setup(t)
	c.Add(item("1", 100, 1))
	c.Close()
	before := fs.saveCount()
	c.Remove("nope")
	c.Close()
	if fs.saveCount() != before {
		t.Fatalf("remove of absent item must not snapshot")
	}
	if c.Len() != 1 {
		t.Fatalf("cart changed by no-op remove")
	}
}

func TestTotalRoundTrip(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("1", 100, 2))
	base := c.Total()
	c.Add(item("2", 50, 3))
	if c.Total() != base+150 {
		t.Fatalf("expected %v, got %v", base+150, c.Total())
	}
	c.Remove("2")
	if c.Total() != base {
		t.Fatalf("total must return to %v, got %v", base, c.Total())
	}
}

func TestAddSameProductTotals(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("A", 100, 1))
	c.Add(domain.OrderItem{ProductID: "A", Price: 100, Quantity: 2})
	if c.Total() != 300 {
		t.Fatalf("expected total 300, got %v", c.Total())
	}
	if c.Len() != 1 || c.Items()[0].Quantity != 3 {
		t.Fatalf("expected one line with quantity 3")
	}
}

func TestClear(t *testing.T) {
	c, _ := setup(t)
	c.Add(item("1", 100, 1))
	c.Clear()
	if c.Len() != 0 || c.Total() != 0 {
		t.Fatalf("cart not empty after clear")
	}
}

func TestMutationsSnapshotLatestState(t *testing.T) {
	c, fs := setup(t)
	c.Add(item("1", 100, 1))
	c.SetQuantity("1", 3)
	c.Remove("1")
	c.Clear()
	c.Close()
	// снимки старее уже записанного пропускаются, поэтому их может быть
	// меньше, чем мутаций; важно, что последний совпадает с памятью
	if fs.saveCount() == 0 {
		t.Fatalf("expected at least one snapshot")
	}
	if got := fs.lastSave(); len(got) != 0 {
		t.Fatalf("last snapshot must match the empty cart, got %v", got)
	}
}

func TestSlowSaveDoesNotPersistStaleSnapshot(t *testing.T) {
	fs := &fakeStore{delayFor: func(items []domain.OrderItem) time.Duration {
		if len(items) > 0 {
			return 50 * time.Millisecond // непустой снимок пишется медленно
		}
		return 0
	}}
	c := New(fs, zap.NewNop())
	c.Add(item("1", 100, 1))
	c.Clear() // успешное оформление заказа делает ровно это
	c.Close()
	if c.Len() != 0 {
		t.Fatalf("cart must be empty")
	}
	if got := fs.lastSave(); len(got) != 0 {
		t.Fatalf("persisted snapshot is stale: %v", got)
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	fs := &fakeStore{saveErr: errors.New("disk full")}
	c := New(fs, zap.NewNop())
	c.Add(item("1", 100, 1))
	c.Close()
	// сбой записи проглатывается, память остаётся источником истины
	if c.Len() != 1 {
		t.Fatalf("in-memory state lost on save failure")
	}
}

func TestLoadFailureDefaultsEmpty(t *testing.T) {
	fs := &fakeStore{loadErr: errors.New("corrupt")}
	c := New(fs, zap.NewNop())
	if c.Len() != 0 {
		t.Fatalf("expected empty cart on load failure")
	}
}

func TestLoadRestoresSnapshot(t *testing.T) {
	fs := &fakeStore{initial: []domain.OrderItem{item("1", 100, 2)}}
	c := New(fs, zap.NewNop())
	if c.Len() != 1 || c.Total() != 200 {
		t.Fatalf("snapshot not restored: %v", c.Items())
	}
}

func TestSubscribe(t *testing.T) {
	c, _ := setup(t)
	var events int
	c.Subscribe(func(items []domain.OrderItem) { events++ })
	c.Add(item("1", 100, 1))
	c.Clear()
	if events != 2 {
		t.Fatalf("expected 2 notifications, got %d", events)
	}
}
