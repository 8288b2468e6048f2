package kim

import (
	"fmt"
	"sort"
	"strings"
)

// Option keys the dispatcher sets itself, per backend. Callers supplying
// any of them would silently fight the generated configuration, so the
// dispatch fails before any backend is constructed.
var (
	kimmodelNotAllowed  = []string{"modelname", "debug"}
	lammpsrunNotAllowed = []string{"parameters", "files", "specorder", "keep_tmp_files"}
	lammpslibNotAllowed = []string{"lammps_header", "lmpcmds", "atom_types", "log_file", "keep_alive"}
	asapPMNotAllowed    = []string{"name", "verbose"}
	asapSMNotAllowed    = []string{"Params"}
)

// checkConflictOptions fails when options contains any key from notAllowed.
// The error lists every conflicting key so the caller can fix all of them
// in one pass.
func checkConflictOptions(options map[string]any, notAllowed []string, backend string) error {
	var conflicts []string
	for _, key := range notAllowed {
		if _, ok := options[key]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%q", key))
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	sort.Strings(conflicts)
	return fmt.Errorf("%w: backend %q determines option(s) %s",
		ErrOptionConflict, backend, strings.Join(conflicts, ", "))
}
