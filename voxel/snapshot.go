package voxel

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

const (
	snapshotFormat  = "voxnav.grid"
	snapshotVersion = 1
)

// SnapshotHeader is the JSON line written ahead of the encoded columns.
type SnapshotHeader struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Width   int    `json:"width"`
	Depth   int    `json:"depth"`
	Height  int    `json:"height"`
	Runs    int    `json:"runs"`
}

type snapshotBody struct {
	Columns [][]Run
}

// WriteSnapshot writes g to w as a zstd stream holding a JSON header line
// followed by the gob-encoded run-length columns.
func WriteSnapshot(w io.Writer, g *Grid) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(SnapshotHeader{
		Format:  snapshotFormat,
		Version: snapshotVersion,
		Width:   g.Width,
		Depth:   g.Depth,
		Height:  g.Height,
		Runs:    g.Runs(),
	})
	if err != nil {
		enc.Close()
		return err
	}
	if _, err = bw.Write(hb); err == nil {
		err = bw.WriteByte('\n')
	}
	if err == nil {
		body := snapshotBody{Columns: make([][]Run, len(g.columns))}
		for i, c := range g.columns {
			body.Columns[i] = c
		}
		if err = gob.NewEncoder(bw).Encode(&body); err != nil {
			err = fmt.Errorf("gob encode: %w", err)
		}
	}
	if err == nil {
		err = bw.Flush()
	}
	if cerr := enc.Close(); err == nil {
		err = cerr
	}

	return err
}

// ReadSnapshot decodes a grid written by WriteSnapshot.
// Returns ErrBadSnapshot when the header or the column layout is inconsistent.
func ReadSnapshot(r io.Reader) (*Grid, SnapshotHeader, error) {
	var hdr SnapshotHeader
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, hdr, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, hdr, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if err = json.Unmarshal(line, &hdr); err != nil {
		return nil, hdr, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if hdr.Format != snapshotFormat || hdr.Version != snapshotVersion {
		return nil, hdr, fmt.Errorf("%w: format %q version %d", ErrBadSnapshot, hdr.Format, hdr.Version)
	}

	g, err := NewGrid(hdr.Width, hdr.Depth, hdr.Height)
	if err != nil {
		return nil, hdr, err
	}
	var body snapshotBody
	if err = gob.NewDecoder(br).Decode(&body); err != nil {
		return nil, hdr, fmt.Errorf("gob decode: %w", err)
	}
	if len(body.Columns) != len(g.columns) {
		return nil, hdr, fmt.Errorf("%w: %d columns, want %d", ErrBadSnapshot, len(body.Columns), len(g.columns))
	}
	for i, runs := range body.Columns {
		total := 0
		var c column
		for _, run := range runs {
			total += int(run.Len)
			c = c.push(run)
		}
		if total != g.Height {
			return nil, hdr, fmt.Errorf("%w: column %d spans %d cells, want %d", ErrBadSnapshot, i, total, g.Height)
		}
		g.columns[i] = c
	}

	return g, hdr, nil
}

// SaveFile writes a snapshot of g to path, replacing any existing file.
func SaveFile(path string, g *Grid) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err = WriteSnapshot(f, g); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, _, err := ReadSnapshot(f)

	return g, err
}
