package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// DefaultFilename is where the training command writes its parameters.
const DefaultFilename = "Network.csv"

// Encode writes every parameter as one decimal number per line in the order
// w1 (row-major), b1, w2 (row-major), b2. Numbers use the shortest form
// that parses back to the same float64.
func (p *Params) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, seg := range p.segments() {
		for _, v := range seg {
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode reads whitespace-separated numbers into p in Encode order and
// returns how many it consumed.
//
// The count is not checked against the shape. When r runs out early the
// remaining parameters keep their current values and Decode returns a nil
// error; callers that need a complete file compare the count with
// Shape.Count. Numbers past the last parameter are ignored.
func (p *Params) Decode(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	n := 0
	for _, seg := range p.segments() {
		for i := range seg {
			if !sc.Scan() {
				return n, sc.Err()
			}
			v, err := strconv.ParseFloat(sc.Text(), 64)
			if err != nil {
				return n, fmt.Errorf("%w: value %d: %v", ErrFormat, n+1, err)
			}
			seg[i] = v
			n++
		}
	}
	return n, nil
}

// Save writes p to path, replacing any existing file. A failure part way
// through leaves a truncated file behind.
func (p *Params) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()
	if err := p.Encode(f); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Load reads parameters from path with the semantics of Decode.
func (p *Params) Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	n, err := p.Decode(f)
	if err != nil {
		if errors.Is(err, ErrFormat) {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		return n, &IOError{Op: "read", Path: path, Err: err}
	}
	return n, nil
}
