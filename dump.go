package dochooks

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const dumpHeader = `// Hooks compatibility file.
//
// Code generated by dochooks dump-hooks. DO NOT EDIT.
`

// ClassCount is the number of hooks a dump wrote for one registry entry.
type ClassCount struct {
	Class string // entry key, the class name unless the class has several instances
	Hooks int
}

// Render writes every hook in reg as a replayable statement, classes in the
// order they were added and hooks in the order they were bound.
func Render(w io.Writer, reg *Registry) ([]ClassCount, error) {
	bw := bufio.NewWriter(w)
	bw.WriteString(dumpHeader)
	bw.WriteString("\n")

	objects := reg.HookedObjects()
	counts := make([]ClassCount, 0, len(objects))
	for _, obj := range objects {
		for _, rec := range obj.Hooks {
			st := StatementFor(rec)
			st.Class = obj.Key
			bw.WriteString(st.String())
			bw.WriteString("\n")
		}
		counts = append(counts, ClassCount{Class: obj.Key, Hooks: len(obj.Hooks)})
	}

	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("write dump: %w", err)
	}
	return counts, nil
}

// Dump renders reg to path, replacing any previous file.
func Dump(reg *Registry, path string) ([]ClassCount, error) {
	var buf bytes.Buffer
	counts, err := Render(&buf, reg)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return counts, nil
}
