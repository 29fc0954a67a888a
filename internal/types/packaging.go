package types

import "fmt"

// PackagingMismatch is the recoverable packaging failure: the MSI file
// list generated by the build no longer matches the checked-in one.
// Remediation copies GeneratedPath over ExpectedPath and retries the
// packaging step once.
type PackagingMismatch struct {
	ExpectedPath  string
	GeneratedPath string
}

func (e *PackagingMismatch) Error() string {
	return fmt.Sprintf("msi file list mismatch; expected: %s; generated: %s", e.ExpectedPath, e.GeneratedPath)
}
