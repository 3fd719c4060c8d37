package registry

// Default is the process-wide registry, pre-created with the stock
// categories. It is a convenience only: the resolver works against whichever
// registry it is constructed with, and isolated tests should build their own
// via New.
var Default = New("layers", "optimizers", "schedules")

// Register adds a constructor to the Default registry.
func Register(category, name string, c *Constructor) error {
	return Default.Register(category, name, c)
}

// MustRegister adds a constructor to the Default registry, panicking on
// failure. Intended for package init functions.
func MustRegister(category, name string, c *Constructor) {
	Default.MustRegister(category, name, c)
}

// Lookup fetches a constructor from the Default registry.
func Lookup(category, name string) (*Constructor, error) {
	return Default.Lookup(category, name)
}
