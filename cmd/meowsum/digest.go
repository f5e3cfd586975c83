package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/internal/mmap"
)

// hashOptions selects how a digest is computed and printed.
type hashOptions struct {
	bits    int
	lanes   string
	seed    uint64
	aligned bool
}

func (o hashOptions) validate() error {
	switch o.bits {
	case 32, 64, 128, 256, 512:
	default:
		return fmt.Errorf("invalid --bits %d (want 32, 64, 128, 256 or 512)", o.bits)
	}
	switch o.lanes {
	case "auto", "128", "256", "512":
	default:
		return fmt.Errorf("invalid --lanes %q (want 128, 256, 512 or auto)", o.lanes)
	}
	return nil
}

// digest hashes data with the selected width and mode.
func (o hashOptions) digest(data []byte) meowhash.Digest[meowhash.Lane512] {
	switch o.lanes {
	case "128":
		if o.aligned {
			return meowhash.HashAligned[meowhash.Lanes128, meowhash.Lane512](data, o.seed)
		}
		return meowhash.Hash[meowhash.Lanes128, meowhash.Lane512](data, o.seed)
	case "256":
		if o.aligned {
			return meowhash.HashAligned[meowhash.Lanes256, meowhash.Lane512](data, o.seed)
		}
		return meowhash.Hash[meowhash.Lanes256, meowhash.Lane512](data, o.seed)
	default:
		// Lanes512 resolves to the widest kernel the CPU runs.
		if o.aligned {
			return meowhash.HashAligned[meowhash.Lanes512, meowhash.Lane512](data, o.seed)
		}
		return meowhash.Hash[meowhash.Lanes512, meowhash.Lane512](data, o.seed)
	}
}

// sumHex returns the hex of the first bits/8 digest bytes of data.
func (o hashOptions) sumHex(data []byte) string {
	return hex.EncodeToString(o.digest(data).Prefix(o.bits / 8))
}

// input is the contents of one file or of stdin.
type input struct {
	data []byte
	m    *mmap.Mapping
}

func (in *input) Close() error {
	if in.m != nil {
		return in.m.Close()
	}
	return nil
}

// openInput maps a regular file, or reads stdin for "-" and anything that
// cannot be mapped.
func openInput(name string, stdin io.Reader) (*input, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return &input{data: data}, nil
	}

	m, err := mmap.Open(name)
	if errors.Is(err, mmap.ErrNotRegular) || errors.Is(err, errors.ErrUnsupported) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return &input{data: data}, nil
	}
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &input{data: m.Bytes(), m: m}, nil
}

// sumFile returns sumHex of the named file.
func (o hashOptions) sumFile(name string, stdin io.Reader) (string, error) {
	in, err := openInput(name, stdin)
	if err != nil {
		return "", err
	}
	defer in.Close()
	return o.sumHex(in.data), nil
}
