package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// readNumbers reads whitespace-separated floating-point numbers from r.
func readNumbers(r io.Reader) ([]float64, error) {
	var data []float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		x, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number at position %v: %w", len(data)+1, err)
		}
		data = append(data, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// readInput reads numbers from the named file, or from stdin if name is
// empty or "-".
func readInput(name string, stdin io.Reader) ([]float64, error) {
	if name == "" || name == "-" {
		return readNumbers(stdin)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()
	return readNumbers(file)
}
