package transport

import "bytes"

// LineScanner reassembles newline-delimited statsd lines from a byte stream.
// A single read from a TCP stream may carry several concatenated lines, or a
// fraction of one; the scanner accumulates the incoming bytes, hands back the
// lines completed so far and retains any trailing partial line for the next
// read.
type LineScanner struct {
	buf []byte
}

// Push appends p to the pending buffer and returns the lines it completed,
// in order, without their trailing newline. Empty lines are skipped. The
// returned slices do not alias p or the internal buffer.
func (ls *LineScanner) Push(p []byte) [][]byte {
	ls.buf = append(ls.buf, p...)
	idx := bytes.LastIndexByte(ls.buf, '\n')
	if idx == -1 {
		return nil
	}
	var lines [][]byte
	for _, line := range bytes.Split(ls.buf[:idx], []byte{'\n'}) {
		if len(line) > 0 {
			lines = append(lines, append([]byte(nil), line...))
		}
	}
	ls.buf = append(ls.buf[:0], ls.buf[idx+1:]...)
	return lines
}

// Pending returns the number of buffered bytes belonging to the current
// partial line.
func (ls *LineScanner) Pending() int {
	return len(ls.buf)
}
