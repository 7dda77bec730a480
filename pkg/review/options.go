package review

// Theme captures optional message prefixes the drawer applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the drawer.
type Option func(*Drawer)

// WithPromptDriver overrides the prompt driver used by the drawer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(d *Drawer) {
		if driver != nil {
			d.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(d *Drawer) {
		d.theme = theme
	}
}

// WithPageSize limits how many changes are listed per page.
func WithPageSize(size int) Option {
	return func(d *Drawer) {
		if size > 0 {
			d.pageSize = size
		}
	}
}
