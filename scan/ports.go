package scan

// DefaultPorts is scanned when no explicit selection is given: common web,
// mail, file transfer, database, remote access and Windows services.
var DefaultPorts = []int{
	80, 443, 8080, 8443, 8000, 3000,
	25, 110, 143, 465, 587, 993, 995,
	21, 22, 69,
	1433, 1521, 3306, 5432, 27017,
	23, 3389, 5900,
	53, 67, 68, 161,
	111, 135, 139, 445, 1723,
}

// DescribePort returns the registered service name for a TCP port, or
// "unknown" when the port has no registration.
func DescribePort(port int) string {
	if s, ok := knownPorts[port]; ok {
		return s
	}

	return "unknown"
}
