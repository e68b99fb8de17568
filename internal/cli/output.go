package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJSON writes v to w as a single JSON document, indented when pretty
// is set. Map keys come out sorted either way, which keeps cache diffs and
// test output stable.
func printJSON(w io.Writer, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
