package routes

import (
	"errors"
	"fmt"
	"strings"
)

// Screen символическое имя навигируемого экрана
type Screen string

const (
	ScreenLogin          Screen = "LoginScreen"
	ScreenCatalog        Screen = "CatalogScreen"
	ScreenCart           Screen = "CartScreen"
	ScreenProfile        Screen = "ProfileScreen"
	ScreenAdminPanel     Screen = "AdminPanel"
	ScreenProductDetails Screen = "ProductDetailsScreen"
	ScreenOrderStatus    Screen = "OrderStatusScreen"
	ScreenOrderDetails   Screen = "OrderDetailsScreen"
	ScreenOrderHistory   Screen = "OrderHistoryScreen"
	ScreenPayment        Screen = "PaymentScreen"
	ScreenSupport        Screen = "SupportScreen"
)

var ErrDuplicateSegment = errors.New("duplicate first segment")

// Entry пара (экран, шаблон пути). Шаблон может содержать один
// позиционный параметр вида ":id"; суффикс "?" делает его необязательным.
type Entry struct {
	Screen   Screen
	Template string
}

// Table статическая таблица маршрутов. Строится на старте и далее не
// изменяется; порядок записей задаёт приоритет при прямом поиске.
type Table struct {
	entries  []Entry
	byFirst  map[string]int // первый сегмент шаблона -> индекс записи
	byScreen map[Screen]int // экран -> индекс первой записи
}

// NewTable проверяет записи и строит индексы. Два шаблона с одинаковым
// первым сегментом — ошибка конструирования, а не недокументированная
// зависимость от порядка.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries:  entries,
		byFirst:  make(map[string]int, len(entries)),
		byScreen: make(map[Screen]int, len(entries)),
	}
	for i, e := range entries {
		first := firstSegment(e.Template)
		if first == "" {
			return nil, fmt.Errorf("route %q: empty template", e.Screen)
		}
		if _, ok := t.byFirst[first]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSegment, first)
		}
		t.byFirst[first] = i
		if _, ok := t.byScreen[e.Screen]; !ok {
			t.byScreen[e.Screen] = i
		}
	}
	return t, nil
}

// PathFor возвращает шаблон пути для экрана. Если экрану принадлежит
// несколько шаблонов, возвращается первый по порядку таблицы.
func (t *Table) PathFor(s Screen) (string, bool) {
	i, ok := t.byScreen[s]
	if !ok {
		return "", false
	}
	return t.entries[i].Template, true
}

// ScreenFor обратный поиск: первый сегмент входящего пути -> экран.
func (t *Table) ScreenFor(segment string) (Screen, bool) {
	i, ok := t.byFirst[segment]
	if !ok {
		return "", false
	}
	return t.entries[i].Screen, true
}

// ParamName имя позиционного параметра шаблона экрана ("" — параметров нет).
func (t *Table) ParamName(s Screen) string {
	i, ok := t.byScreen[s]
	if !ok {
		return ""
	}
	return templateParam(t.entries[i].Template)
}

func firstSegment(template string) string {
	seg, _, _ := strings.Cut(template, "/")
	return seg
}

func templateParam(template string) string {
	for _, seg := range strings.Split(template, "/") {
		if strings.HasPrefix(seg, ":") {
			return strings.TrimSuffix(strings.TrimPrefix(seg, ":"), "?")
		}
	}
	return ""
}

// Default таблица маршрутов приложения: стабильные пути плюс прямые
// ссылки на экраны по имени компонента.
func Default() *Table {
	t, err := NewTable([]Entry{
		{ScreenLogin, "login"},
		{ScreenCatalog, "catalog"},
		{ScreenCart, "cart"},
		{ScreenProfile, "profile"},
		{ScreenAdminPanel, "admin"},
		{ScreenProductDetails, "product/:id"},
		{ScreenOrderStatus, "order/:id"},
		{ScreenOrderDetails, "order-details/:id"},
		{ScreenLogin, "LoginScreen"},
		{ScreenCatalog, "CatalogScreen"},
		{ScreenCart, "CartScreen"},
		{ScreenProfile, "ProfileScreen"},
		{ScreenAdminPanel, "AdminPanel"},
		{ScreenProductDetails, "ProductDetailsScreen/:id"},
		{ScreenOrderStatus, "OrderStatusScreen/:id"},
		{ScreenOrderDetails, "OrderDetailsScreen/:id"},
		{ScreenOrderHistory, "OrderHistoryScreen"},
		{ScreenPayment, "PaymentScreen/:amount?"},
		{ScreenSupport, "SupportScreen"},
	})
	if err != nil {
		panic(err) // статическая таблица, ошибка здесь — ошибка программиста
	}
	return t
}
