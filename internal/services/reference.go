package services

import (
	"fmt"
	"math/rand"
	"time"
)

const importReferencePrefix = "IMP"

// newImportReference tags one import run in logs and events, e.g.
// IMP20250102150405-0042. The timestamp is UTC.
func newImportReference(at time.Time) string {
	return fmt.Sprintf("%s%s-%04d", importReferencePrefix, at.UTC().Format("20060102150405"), rand.Intn(10000))
}
