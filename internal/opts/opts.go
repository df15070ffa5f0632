package opts

// GlobalOptions is process-wide and read-mostly: it is mutated only while
// handling UCI setoption, never while a search worker is running.
type GlobalOptions struct {
	Chess960 bool
}

var _opts = GlobalOptions{}

func Get() *GlobalOptions {
	return &_opts
}

func Chess960() bool {
	return _opts.Chess960
}

func SetChess960(enabled bool) {
	_opts.Chess960 = enabled
}
