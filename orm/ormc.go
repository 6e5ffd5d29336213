//go:build !wasm

package orm

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"

	"github.com/tinywasm/fmt"
)

// GenerateForStruct reads the Go File and generates the ORM implementations for a given struct name.
func (o *Ormc) GenerateForStruct(structName string, goFile string) error {
	info, err := o.ParseStruct(structName, goFile)
	if err != nil {
		return err
	}
	if len(info.Fields) == 0 {
		return nil
	}
	return o.GenerateForFile([]StructInfo{info}, goFile)
}

// GenerateForFile writes ORM implementations for all infos into one file
// named after sourceFile with an _orm.go suffix.
func (o *Ormc) GenerateForFile(infos []StructInfo, sourceFile string) error {
	if len(infos) == 0 {
		return nil
	}
	buf := fmt.Convert()

	buf.Write("// Code generated by ormc; DO NOT EDIT.\n")
	buf.Write("// NOTE: Schema() and Values() must always be in the same field order.\n")
	buf.Write(fmt.Sprintf("package %s\n\n", infos[0].PackageName))
	buf.Write("import (\n")
	buf.Write("\t\"github.com/tinywasm/ftsearch/orm\"\n")
	buf.Write(")\n\n")

	write := func(s string) { buf.Write(s) }
	for _, info := range infos {
		writeModelMethods(write, info)
		writeMeta(write, info)
		writeReaders(write, info)
	}

	outName := fmt.Convert(sourceFile).TrimSuffix(".go").String() + "_orm.go"
	return os.WriteFile(outName, buf.Bytes(), 0644)
}

func writeModelMethods(write func(string), info StructInfo) {
	if !info.TableNameDeclared {
		write(fmt.Sprintf("func (m *%s) TableName() string {\n", info.Name))
		write(fmt.Sprintf("\treturn \"%s\"\n", info.TableName))
		write("}\n\n")
	}

	write(fmt.Sprintf("func (m *%s) Schema() []orm.Field {\n", info.Name))
	write("\treturn []orm.Field{\n")
	for _, f := range info.Fields {
		write(fmt.Sprintf("\t\t{Name: \"%s\", Type: %s, Constraints: %s", f.ColumnName, typeLiteral(f.Type), constraintLiteral(f.Constraints)))
		if f.Ref != "" {
			write(fmt.Sprintf(", Ref: \"%s\"", f.Ref))
		}
		if f.RefColumn != "" {
			write(fmt.Sprintf(", RefColumn: \"%s\"", f.RefColumn))
		}
		if f.Relation != "" {
			write(fmt.Sprintf(", Relation: \"%s\"", f.Relation))
		}
		write("},\n")
	}
	write("\t}\n")
	write("}\n\n")

	if paths := info.SearchFields(); len(paths) > 0 {
		quoted := make([]string, len(paths))
		for i, p := range paths {
			quoted[i] = "\"" + p + "\""
		}
		write(fmt.Sprintf("func (m *%s) SearchFields() []string {\n", info.Name))
		write(fmt.Sprintf("\treturn []string{%s}\n", fmt.Convert(quoted).Join(", ").String()))
		write("}\n\n")
	}

	write(fmt.Sprintf("func (m *%s) Values() []any {\n", info.Name))
	write("\treturn []any{\n")
	for _, f := range info.Fields {
		write(fmt.Sprintf("\t\tm.%s,\n", f.Name))
	}
	write("\t}\n")
	write("}\n\n")

	write(fmt.Sprintf("func (m *%s) Pointers() []any {\n", info.Name))
	write("\treturn []any{\n")
	for _, f := range info.Fields {
		write(fmt.Sprintf("\t\t&m.%s,\n", f.Name))
	}
	write("\t}\n")
	write("}\n\n")
}

func writeMeta(write func(string), info StructInfo) {
	write(fmt.Sprintf("var %sMeta = struct {\n", info.Name))
	write("\tTableName string\n")
	for _, f := range info.Fields {
		write(fmt.Sprintf("\t%s string\n", f.Name))
	}
	write("}{\n")
	write(fmt.Sprintf("\tTableName: \"%s\",\n", info.TableName))
	for _, f := range info.Fields {
		write(fmt.Sprintf("\t%s: \"%s\",\n", f.Name, f.ColumnName))
	}
	write("}\n\n")
}

func writeReaders(write func(string), info StructInfo) {
	write(fmt.Sprintf("func ReadOne%s(qb *orm.QB, model *%s) (*%s, error) {\n", info.Name, info.Name, info.Name))
	write("\tif err := qb.ReadOne(); err != nil {\n")
	write("\t\treturn nil, err\n")
	write("\t}\n")
	write("\treturn model, nil\n")
	write("}\n\n")

	write(fmt.Sprintf("func ReadAll%s(qb *orm.QB) ([]*%s, error) {\n", info.Name, info.Name))
	write(fmt.Sprintf("\tvar results []*%s\n", info.Name))
	write("\terr := qb.ReadAll(\n")
	write(fmt.Sprintf("\t\tfunc() orm.Model { return &%s{} },\n", info.Name))
	write(fmt.Sprintf("\t\tfunc(m orm.Model) { results = append(results, m.(*%s)) },\n", info.Name))
	write("\t)\n")
	write("\treturn results, err\n")
	write("}\n\n")

	for _, rel := range info.Relations {
		write(fmt.Sprintf("// %s retrieves all %s records for a given parent ID.\n", rel.LoaderName, rel.ChildStruct))
		write(fmt.Sprintf("func %s(db *orm.DB, parentID %s) ([]*%s, error) {\n", rel.LoaderName, rel.FKFieldType, rel.ChildStruct))
		write(fmt.Sprintf("\treturn ReadAll%s(db.Query(&%s{}).Where(orm.Eq(%sMeta.%s, parentID)))\n", rel.ChildStruct, rel.ChildStruct, rel.ChildStruct, rel.FKField))
		write("}\n\n")
	}
}

func typeLiteral(t FieldType) string {
	switch t {
	case TypeInt64:
		return "orm.TypeInt64"
	case TypeFloat64:
		return "orm.TypeFloat64"
	case TypeBool:
		return "orm.TypeBool"
	case TypeBlob:
		return "orm.TypeBlob"
	}
	return "orm.TypeText"
}

func constraintLiteral(c Constraint) string {
	if c == ConstraintNone {
		return "orm.ConstraintNone"
	}
	var parts []string
	if c&ConstraintPK != 0 {
		parts = append(parts, "orm.ConstraintPK")
	}
	if c&ConstraintUnique != 0 {
		parts = append(parts, "orm.ConstraintUnique")
	}
	if c&ConstraintNotNull != 0 {
		parts = append(parts, "orm.ConstraintNotNull")
	}
	if c&ConstraintAutoIncrement != 0 {
		parts = append(parts, "orm.ConstraintAutoIncrement")
	}
	if c&ConstraintFulltext != 0 {
		parts = append(parts, "orm.ConstraintFulltext")
	}
	return fmt.Convert(parts).Join(" | ").String()
}

// collectAllStructs walks rootDir and returns every parsed StructInfo found
// in the configured model files, keyed by struct name, plus the discovery
// order of structs and files. Used by Run() Pass 1.
func (o *Ormc) collectAllStructs() (map[string]StructInfo, []string, []string, error) {
	all := make(map[string]StructInfo)
	var structOrder, fileOrder []string
	fileSeen := make(map[string]bool)

	err := filepath.Walk(o.rootDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			switch fi.Name() {
			case "vendor", ".git", "testdata":
				return filepath.SkipDir
			}
			return nil
		}
		if !o.isModelFile(fi.Name()) {
			return nil
		}

		for _, name := range structNames(path) {
			info, err := o.ParseStruct(name, path)
			if err != nil {
				o.log(fmt.Sprintf("Skipping %s in %s: %v", name, path, err))
				continue
			}
			if len(info.Fields) == 0 {
				o.log(fmt.Sprintf("Warning: %s has no mappable fields; skipping", name))
				continue
			}
			info.SourceFile = path
			all[info.Name] = info
			structOrder = append(structOrder, info.Name)
			if !fileSeen[path] {
				fileSeen[path] = true
				fileOrder = append(fileOrder, path)
			}
		}
		return nil
	})

	return all, structOrder, fileOrder, err
}

// structNames lists the top-level struct types declared in a Go file.
// Unparseable files yield nothing.
func structNames(path string) []string {
	node, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ParseComments)
	if err != nil {
		return nil
	}
	var names []string
	for _, decl := range node.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			if typeSpec, ok := spec.(*ast.TypeSpec); ok {
				if _, ok := typeSpec.Type.(*ast.StructType); ok {
					names = append(names, typeSpec.Name.Name)
				}
			}
		}
	}
	return names
}

// generateAll groups the enriched all map by source file path and calls
// GenerateForFile once per file.
func (o *Ormc) generateAll(all map[string]StructInfo, structOrder []string, fileOrder []string) error {
	byFile := make(map[string][]StructInfo)
	for _, structName := range structOrder {
		info := all[structName]
		byFile[info.SourceFile] = append(byFile[info.SourceFile], info)
	}

	for _, sourceFile := range fileOrder {
		if err := o.GenerateForFile(byFile[sourceFile], sourceFile); err != nil {
			o.log(fmt.Sprintf("Failed to write output for %s: %v", sourceFile, err))
		}
	}
	return nil
}

// Run is the entry point for the CLI tool.
func (o *Ormc) Run() error {
	// Pass 1: collect all structs across all model files
	all, structOrder, fileOrder, err := o.collectAllStructs()
	if err != nil {
		return fmt.Err(err, "error walking directory")
	}
	if len(all) == 0 {
		return fmt.Err("no models found")
	}

	// Pass 2: resolve cross-struct relations
	o.ResolveRelations(all)

	// Pass 3: generate, one output file per source file
	return o.generateAll(all, structOrder, fileOrder)
}
