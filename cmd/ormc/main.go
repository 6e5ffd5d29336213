//go:build !wasm

// Command ormc generates orm.Model implementations, relation loaders and
// full-text SearchFields() for the structs declared in model files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tinywasm/ftsearch/orm"
)

func main() {
	root := flag.String("root", ".", "directory to scan")
	files := flag.String("files", "model.go,models.go", "comma separated model file names")
	quiet := flag.Bool("q", false, "suppress warnings")
	flag.Parse()

	o := orm.NewOrmc()
	o.SetRootDir(*root)
	o.SetModelFiles(strings.Split(*files, ",")...)
	if !*quiet {
		o.SetLog(func(messages ...any) {
			fmt.Fprintln(os.Stderr, messages...)
		})
	}
	if err := o.Run(); err != nil {
		log.Fatalf("ormc: %v", err)
	}
}
