package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/liamg/portgrab/scan"
)

const maxPort = 65535

// getPorts expands a selection such as "22,80,8000-8010" into a port list,
// preserving order and repeats. "common" or an empty selection yields the
// default port set.
func getPorts(selection string) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" || strings.EqualFold(selection, "common") {
		return append([]int(nil), scan.DefaultPorts...), nil
	}
	ports := []int{}
	ranges := strings.Split(selection, ",")
	for _, r := range ranges {
		r = strings.TrimSpace(r)
		if strings.Contains(r, "-") {
			parts := strings.Split(r, "-")
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid port selection segment: '%s'", r)
			}

			p1, err := parsePort(parts[0])
			if err != nil {
				return nil, err
			}

			p2, err := parsePort(parts[1])
			if err != nil {
				return nil, err
			}

			if p1 > p2 {
				return nil, fmt.Errorf("invalid port range: %d-%d", p1, p2)
			}

			for i := p1; i <= p2; i++ {
				ports = append(ports, i)
			}

		} else {
			port, err := parsePort(r)
			if err != nil {
				return nil, err
			}
			ports = append(ports, port)
		}
	}
	return ports, nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: '%s'", s)
	}
	if port < 1 || port > maxPort {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}
