// Package reporter provides [reduce.Reporter] implementations that render
// scan progress and results to a terminal.
package reporter

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avreduce/avreduce/pkg/reduce"
)

// Output is the destination a [Console] writes to. The CLI's *IO
// satisfies it.
type Output interface {
	Printf(format string, a ...any)
	ErrPrintln(a ...any)
}

// Console reports scan events to an [Output], tagging every run with a
// short correlation ID so multiple concurrent invocations' output can be
// told apart in shared logs.
type Console struct {
	io      Output
	runID   string
	hexdump bool
}

var _ reduce.Reporter = (*Console)(nil)

// NewConsole constructs a Console reporter writing to io. If hexdump is
// true, [Console.Match] additionally renders the matched bytes via
// [hex.Dumper].
func NewConsole(io Output, hexdump bool) *Console {
	return &Console{io: io, runID: shortRunID(), hexdump: hexdump}
}

func shortRunID() string {
	return uuid.New().String()[:8]
}

func (c *Console) Progress(chunksTested, matchCount, matchesAdded int) {
	c.io.Printf("[%s] progress: %d chunks tested, %d matches (%d new)\n", c.runID, chunksTested, matchCount, matchesAdded)
}

func (c *Console) Match(m reduce.Match, content []byte) {
	c.io.Printf("[%s] match #%d: [%d,%d) len=%d iteration=%d\n", c.runID, m.Index, m.Begin, m.End, m.Len(), m.Iteration)

	if c.hexdump {
		var b strings.Builder

		dumper := hex.Dumper(&b)
		_, _ = dumper.Write(content)
		_ = dumper.Close()

		c.io.Printf("%s", b.String())
	}
}

func (c *Console) Notice(msg string) {
	c.io.Printf("[%s] %s\n", c.runID, msg)
}

func (c *Console) Warn(err error, detail string) {
	c.io.ErrPrintln(fmt.Sprintf("[%s] warning: %v: %s", c.runID, err, detail))
}
