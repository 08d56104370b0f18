package app

// Locale is the clock-style setting. The system value comes from config; the
// user can flip it for the running session.
type Locale struct {
	system  bool
	flipped bool
}

// NewLocale returns a locale with the given system clock style.
func NewLocale(is24h bool) *Locale {
	return &Locale{system: is24h}
}

func (l *Locale) Is24hStyle() bool { return l.system != l.flipped }

// SetSystem replaces the configured style, keeping any user flip.
func (l *Locale) SetSystem(is24h bool) { l.system = is24h }

// Toggle flips the effective style.
func (l *Locale) Toggle() { l.flipped = !l.flipped }
