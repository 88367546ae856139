// Package theme — закрытый набор токенов оформления. Вариантов ровно
// два; палитра — фиксированная структура именованных цветов, без
// динамических конфигурационных объектов.
package theme

// Variant вариант темы
type Variant int

const (
	Dark Variant = iota
	Light
)

func (v Variant) String() string {
	if v == Light {
		return "light"
	}
	return "dark"
}

// ParseVariant разбирает сохранённое значение; неизвестное даёт тёмную
// тему (умолчание приложения).
func ParseVariant(s string) Variant {
	if s == "light" {
		return Light
	}
	return Dark
}

// Palette именованные цвета темы
type Palette struct {
	Primary          string
	OnPrimary        string
	Secondary        string
	Background       string
	OnBackground     string
	Surface          string
	OnSurface        string
	SurfaceVariant   string
	OnSurfaceVariant string
	Outline          string
	Error            string
	OnError          string
}

var darkPalette = Palette{
	Primary:          "#3D7DFF",
	OnPrimary:        "#FFFFFF",
	Secondary:        "#00C2FF",
	Background:       "#121212",
	OnBackground:     "#E5E5E5",
	Surface:          "#1E1E1E",
	OnSurface:        "#E1E1E1",
	SurfaceVariant:   "#252525",
	OnSurfaceVariant: "#CCCCCC",
	Outline:          "#7A7A7A",
	Error:            "#FF5757",
	OnError:          "#FFFFFF",
}

var lightPalette = Palette{
	Primary:          "#2667E0",
	OnPrimary:        "#FFFFFF",
	Secondary:        "#0090C2",
	Background:       "#FAFAFA",
	OnBackground:     "#1A1A1A",
	Surface:          "#FFFFFF",
	OnSurface:        "#1E1E1E",
	SurfaceVariant:   "#F0F0F0",
	OnSurfaceVariant: "#333333",
	Outline:          "#8A8A8A",
	Error:            "#D32F2F",
	OnError:          "#FFFFFF",
}

// For возвращает палитру варианта
func For(v Variant) Palette {
	if v == Light {
		return lightPalette
	}
	return darkPalette
}
