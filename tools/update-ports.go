//go:build ignore

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
)

// ports kept in scan/known.go; everything else in the registry is skipped
var tracked = []int{
	7, 9, 13, 19, 20, 21, 22, 23, 25, 37, 43, 53, 67, 68, 69, 70, 79, 80, 88,
	110, 111, 113, 119, 123, 135, 137, 139, 143, 161, 162, 179, 389, 443, 445,
	465, 514, 515, 587, 631, 636, 873, 993, 995, 1080, 1433, 1521, 1723, 2049,
	3000, 3306, 3389, 5432, 5672, 5900, 6379, 8000, 8080, 8443, 9200, 11211,
	27017,
}

func main() {

	want := map[int]bool{}
	for _, port := range tracked {
		want[port] = true
	}

	resp, err := http.Get("https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	names := map[int]string{}
	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}

		if len(record) < 3 || record[2] != "tcp" || record[0] == "" {
			continue
		}

		port, err := strconv.Atoi(record[1])
		if err != nil || !want[port] {
			continue
		}

		// first registration wins
		if _, ok := names[port]; !ok {
			names[port] = record[0]
		}
	}

	ports := make([]int, 0, len(names))
	for port := range names {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	output, err := os.Create("./scan/known.go")
	if err != nil {
		panic(err)
	}
	defer output.Close()

	fmt.Fprint(output, `// Code generated by tools/update-ports.go. DO NOT EDIT.

package scan

// data from https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv
var knownPorts = map[int]string{`)

	for _, port := range ports {
		fmt.Fprintf(output, "\n\t%d: %q,", port, names[port])
	}

	fmt.Fprint(output, "\n}\n")
}
