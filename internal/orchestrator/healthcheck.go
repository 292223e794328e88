package orchestrator

import "fmt"

// minUnsearchableSize is the database-size threshold above which an
// apparently-empty index is treated as a symptom of a locked/inaccessible
// write-ahead log rather than a genuinely empty database.
const minUnsearchableSize = 1_000_000

// checkSearchable runs the health check exactly once per Orchestrator,
// before the first search: a database file larger than minUnsearchableSize
// bytes, with at least one registered codebase, but zero total chunks
// across every codebase's indexed_files rows, is reported as unsearchable
// rather than silently returning no results.
func (o *Orchestrator) checkSearchable() error {
	o.healthOnce.Do(func() {
		o.healthErr = o.runHealthCheck()
	})
	return o.healthErr
}

func (o *Orchestrator) runHealthCheck() error {
	size, err := o.Store.DBSize()
	if err != nil {
		// No database file yet, or it can't be stat'd: nothing to flag.
		return nil
	}
	if size <= minUnsearchableSize {
		return nil
	}

	codebases, err := o.Store.ListCodebases()
	if err != nil {
		return err
	}
	if len(codebases) == 0 {
		return nil
	}

	files, err := o.Store.ListFiles(0)
	if err != nil {
		return err
	}
	total := 0
	for _, f := range files {
		total += f.ChunkCount
	}
	if total > 0 {
		return nil
	}

	return fmt.Errorf(
		"unsearchable database: %s is %d bytes with %d codebase(s) registered but zero indexed chunks "+
			"(likely a locked or inaccessible write-ahead log)",
		o.Store.DBPath(), size, len(codebases),
	)
}
