// Package romset loads program images for the emulated boards. A set is
// either one image file or several chip dumps that land at fixed offsets,
// read from a directory or from a .zip or .7z archive.
package romset

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

var (
	ErrMissingPart = errors.New("romset: missing part")
	ErrPartSize    = errors.New("romset: part has wrong size")
	ErrTooLarge    = errors.New("romset: image exceeds address space")
	ErrEmpty       = errors.New("romset: archive is empty")
)

// MaxImage is the largest image that fits the 16-bit address space.
const MaxImage = 0x10000

// Part is one chip dump of a set. CRC is the CRC-32 of the known good
// dump, zero when not known.
type Part struct {
	Name   string
	Offset uint16
	Size   int
	CRC    uint32
}

// Layout maps the chip dumps of a set to their offsets in memory.
type Layout struct {
	Name  string
	Parts []Part
}

// Invaders is the four-chip Space Invaders (Midway, 1978) program set.
var Invaders = Layout{
	Name: "invaders",
	Parts: []Part{
		{Name: "invaders.h", Offset: 0x0000, Size: 0x800, CRC: 0x734f5ad8},
		{Name: "invaders.g", Offset: 0x0800, Size: 0x800, CRC: 0x6bfaca4a},
		{Name: "invaders.f", Offset: 0x1000, Size: 0x800, CRC: 0x0ccead96},
		{Name: "invaders.e", Offset: 0x1800, Size: 0x800, CRC: 0x14e538b0},
	},
}

// Size returns the span of memory covered by the layout starting at 0.
func (l Layout) Size() int {
	end := 0
	for _, p := range l.Parts {
		if e := int(p.Offset) + p.Size; e > end {
			end = e
		}
	}
	return end
}

// Verify compares an assembled image against the known dump checksums and
// returns the names of the parts that differ. Parts without a CRC are
// skipped.
func (l Layout) Verify(img []byte) []string {
	var bad []string
	for _, p := range l.Parts {
		if p.CRC == 0 {
			continue
		}
		end := int(p.Offset) + p.Size
		if end > len(img) || crc32.ChecksumIEEE(img[p.Offset:end]) != p.CRC {
			bad = append(bad, p.Name)
		}
	}
	return bad
}

// opener yields the contents of one named member of a set.
type opener func() (io.ReadCloser, error)

// Load assembles the image described by l from p. p may be a directory
// holding the parts, a .zip or .7z archive of them, or a single file
// already holding the whole image. The result is Size() bytes long and is
// meant to be loaded at address 0.
func Load(p string, l Layout) ([]byte, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	var members map[string]opener
	switch {
	case fi.IsDir():
		members, err = dirMembers(p)
	case strings.EqualFold(filepath.Ext(p), ".zip"):
		var r *zip.ReadCloser
		if r, err = zip.OpenReader(p); err == nil {
			defer r.Close()
			members = zipMembers(&r.Reader)
		}
	case strings.EqualFold(filepath.Ext(p), ".7z"):
		var r *sevenzip.ReadCloser
		if r, err = sevenzip.OpenReader(p); err == nil {
			defer r.Close()
			members = sevenzipMembers(&r.Reader)
		}
	default:
		data, err := ReadImage(p)
		if err != nil {
			return nil, err
		}
		if len(data) != l.Size() {
			return nil, fmt.Errorf("%w: %s is %d bytes, %s needs %d", ErrPartSize, p, len(data), l.Name, l.Size())
		}
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("romset: open %s: %w", p, err)
	}
	return assemble(l, members)
}

func assemble(l Layout, members map[string]opener) ([]byte, error) {
	img := make([]byte, l.Size())
	for _, part := range l.Parts {
		open, ok := members[strings.ToLower(part.Name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, part.Name)
		}
		data, err := readAll(open)
		if err != nil {
			return nil, fmt.Errorf("romset: read %s: %w", part.Name, err)
		}
		if len(data) != part.Size {
			return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrPartSize, part.Name, len(data), part.Size)
		}
		copy(img[part.Offset:], data)
	}
	return img, nil
}

func readAll(open opener) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, MaxImage+1))
}

func dirMembers(dir string) (map[string]opener, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	m := make(map[string]opener, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		full := filepath.Join(dir, e.Name())
		m[strings.ToLower(e.Name())] = func() (io.ReadCloser, error) { return os.Open(full) }
	}
	return m, nil
}

func zipMembers(r *zip.Reader) map[string]opener {
	m := make(map[string]opener, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		m[strings.ToLower(path.Base(f.Name))] = f.Open
	}
	return m
}

func sevenzipMembers(r *sevenzip.Reader) map[string]opener {
	m := make(map[string]opener, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		m[strings.ToLower(path.Base(f.Name))] = f.Open
	}
	return m
}

// ReadImage reads one program image, decompressing .gz files and taking
// the first member of .zip and .7z archives.
func ReadImage(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
		defer zr.Close()
		data, err = io.ReadAll(io.LimitReader(zr, MaxImage+1))
		if err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
		if data, err = firstMember(zipMembers(zr), zipOrder(zr)); err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
	case ".7z":
		sr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
		order := make([]string, 0, len(sr.File))
		for _, f := range sr.File {
			order = append(order, strings.ToLower(path.Base(f.Name)))
		}
		if data, err = firstMember(sevenzipMembers(sr), order); err != nil {
			return nil, fmt.Errorf("romset: %s: %w", p, err)
		}
	}
	if len(data) > MaxImage {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, p)
	}
	return data, nil
}

func zipOrder(r *zip.Reader) []string {
	order := make([]string, 0, len(r.File))
	for _, f := range r.File {
		order = append(order, strings.ToLower(path.Base(f.Name)))
	}
	return order
}

func firstMember(members map[string]opener, order []string) ([]byte, error) {
	for _, name := range order {
		if open, ok := members[name]; ok {
			return readAll(open)
		}
	}
	return nil, ErrEmpty
}

// Find lists the candidate sets in dir: subdirectories and .zip or .7z
// archives, in name order.
func Find(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || ext == ".zip" || ext == ".7z" {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}
