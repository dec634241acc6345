// Package logtail reads the end of the whattocook log file and renders its
// JSON entries for the terminal.
//
// # Reading
//
// Read returns the last maxLines lines of a file in one pass, using a ring
// buffer of maxLines entries, so memory stays bounded however large the log
// grows. A missing file yields no lines and no error. A non-positive
// maxLines reads the whole file.
//
// # Formatting
//
// The log is written by zap as one JSON object per line. Format turns an
// entry into "ts LEVEL logger  msg  key=value ..." with the extra fields
// sorted by key. Anything that is not a JSON object, such as a panic trace,
// is returned unchanged.
//
// Example:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range logtail.FormatLines(lines) {
//		fmt.Println(line)
//	}
package logtail
