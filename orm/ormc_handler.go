//go:build !wasm

package orm

// Ormc generates Model implementations, relation loaders and
// SearchFields() from struct declarations. Run scans rootDir for files
// named in modelFiles.
type Ormc struct {
	logFn      func(messages ...any)
	rootDir    string
	modelFiles []string
}

// NewOrmc returns an Ormc scanning "." for model.go and models.go.
func NewOrmc() *Ormc {
	return &Ormc{
		rootDir:    ".",
		modelFiles: []string{"model.go", "models.go"},
	}
}

// SetLog routes warnings to fn. Without it they are dropped.
func (o *Ormc) SetLog(fn func(messages ...any)) {
	o.logFn = fn
}

// SetRootDir sets the directory Run walks.
func (o *Ormc) SetRootDir(dir string) {
	o.rootDir = dir
}

// SetModelFiles replaces the file names Run parses. Empty names are ignored.
func (o *Ormc) SetModelFiles(names ...string) {
	var files []string
	for _, n := range names {
		if n != "" {
			files = append(files, n)
		}
	}
	if len(files) > 0 {
		o.modelFiles = files
	}
}

func (o *Ormc) isModelFile(name string) bool {
	for _, f := range o.modelFiles {
		if f == name {
			return true
		}
	}
	return false
}

func (o *Ormc) log(messages ...any) {
	if o.logFn != nil {
		o.logFn(messages...)
	}
}
