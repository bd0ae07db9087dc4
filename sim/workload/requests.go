// Package workload reads the customer request stream consumed by the engine.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/station-sim/station-sim/sim"
)

// ParseRequestLine converts one "HH:MM volume product" line into a Request.
func ParseRequestLine(line string) (*sim.Request, error) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) != 3 {
		return nil, fmt.Errorf("want \"HH:MM volume product\", got %q", strings.TrimSpace(line))
	}

	arrival, err := sim.ParseClock(parts[0])
	if err != nil {
		return nil, err
	}
	quantity, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid volume %q: %w", parts[1], err)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("volume must be positive, got %d", quantity)
	}

	return &sim.Request{
		ArrivalTime: arrival,
		Quantity:    quantity,
		Product:     parts[2],
	}, nil
}

// ReadRequests parses the request stream from r. Malformed lines are skipped
// with a warning; the remaining valid records are returned in input order
// (the engine sorts them by arrival time).
func ReadRequests(r io.Reader) ([]*sim.Request, error) {
	var requests []*sim.Request

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		req, err := ParseRequestLine(scanner.Text())
		if err != nil {
			logrus.Warnf("request line %d skipped: %v", lineNum, err)
			continue
		}
		requests = append(requests, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read request stream: %w", err)
	}

	return requests, nil
}

// LoadRequests reads the request stream file. An unreadable file is a fatal
// error for the caller; bad lines inside a readable file are not.
func LoadRequests(path string) ([]*sim.Request, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read request stream: %w", err)
	}
	defer file.Close()
	return ReadRequests(file)
}
