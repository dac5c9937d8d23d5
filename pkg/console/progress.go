package console

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

const barWidth = 30

// Progress renders "description [bar] done/total". On a terminal the line is
// redrawn in place; elsewhere only the final state is printed.
type Progress struct {
	c     *Console
	bar   progress.Model
	desc  string
	total int
	done  int
}

func (c *Console) NewProgress(desc string, total int) *Progress {
	return &Progress{
		c:     c,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		desc:  desc,
		total: total,
	}
}

// Set records that done units are complete.
func (p *Progress) Set(done int) {
	p.done = min(max(done, 0), p.total)
	if p.c.tty {
		fmt.Fprintf(p.c.out, "\r%s", p.line())
	}
}

// Done prints the final state and ends the line.
func (p *Progress) Done() {
	if p.c.tty {
		fmt.Fprintf(p.c.out, "\r%s\n", p.line())
		return
	}
	fmt.Fprintln(p.c.out, p.line())
}

func (p *Progress) percent() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

func (p *Progress) line() string {
	return fmt.Sprintf("%s %s %s",
		p.c.info.Render(p.desc),
		p.bar.ViewAs(p.percent()),
		p.c.muted.Render(fmt.Sprintf("%d/%d", p.done, p.total)),
	)
}
