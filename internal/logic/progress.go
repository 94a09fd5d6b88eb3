package logic

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/idelchi/govault/internal/engine"
)

// reporter turns engine messages into terminal output.
type reporter struct {
	sink   engine.Sink
	finish func()
}

// newReporter returns a line printer, or a bar over total files when --progress is set.
// Error lines are always printed; --quiet drops the rest.
func (s *Session) newReporter(description string, total int) reporter {
	if s.Config.Progress && total > 0 {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(s.Err),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		return reporter{
			sink: func(m engine.Message) {
				if m.Err {
					fmt.Fprintln(s.Err, m.Text)
				}

				if m.Last {
					_ = bar.Add(1)
				}
			},
			finish: func() { _ = bar.Finish() },
		}
	}

	return reporter{
		sink: func(m engine.Message) {
			switch {
			case m.Err:
				fmt.Fprintln(s.Err, m.Text)
			case !s.Config.Quiet:
				fmt.Fprintln(s.Out, m.Text)
			}
		},
		finish: func() {},
	}
}
