package player_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/trace"
)

var _ = Describe("Player", func() {
	var (
		clock       *player.ManualClock
		p           *player.Player
		tr          *trace.Trace
		completions int
		seen        []int
	)

	BeforeEach(func() {
		clock = player.NewManualClock()
		p = player.New(clock)
		// Six steps: start, search, compare, new minimum, swap, sorted.
		tr = trace.Selection([]int{2, 1})
		Expect(tr.Len()).To(Equal(6))

		completions = 0
		seen = nil
		p.OnComplete(func() { completions++ })
		p.AddObserver(player.ObserverFunc(func(cursor int, _ trace.Step) {
			seen = append(seen, cursor)
		}))
		p.Reset(tr)
	})

	Describe("Reset", func() {
		It("starts idle on the first step", func() {
			Expect(p.State()).To(Equal(player.Idle))
			Expect(p.Cursor()).To(Equal(0))
			Expect(p.CurrentStep()).To(Equal(tr.First()))
			Expect(seen).To(Equal([]int{0}))
		})

		It("cancels a pending advance", func() {
			p.Play(1)
			Expect(clock.Pending()).To(Equal(1))

			p.Reset(trace.Bubble([]int{3, 1, 2}))
			Expect(clock.Pending()).To(Equal(0))
			clock.Advance(10 * time.Second)
			Expect(p.Cursor()).To(Equal(0))
			Expect(p.State()).To(Equal(player.Idle))
		})

		It("rejects an empty trace", func() {
			Expect(func() { p.Reset(nil) }).To(Panic())
		})
	})

	Describe("manual navigation", func() {
		It("steps forward and backward within bounds", func() {
			s, ok := p.StepForward()
			Expect(ok).To(BeTrue())
			Expect(s).To(Equal(tr.Step(1)))
			Expect(p.State()).To(Equal(player.Paused))

			p.StepBackward()
			Expect(p.Cursor()).To(Equal(0))
			p.StepBackward()
			Expect(p.Cursor()).To(Equal(0))
		})

		It("signals completion at the last step without moving", func() {
			for range tr.Len() - 1 {
				_, ok := p.StepForward()
				Expect(ok).To(BeTrue())
			}
			Expect(completions).To(Equal(0))

			s, ok := p.StepForward()
			Expect(ok).To(BeFalse())
			Expect(s).To(Equal(tr.Final()))
			Expect(p.Cursor()).To(Equal(tr.Len() - 1))
			Expect(p.State()).To(Equal(player.Completed))
			Expect(completions).To(Equal(1))

			_, ok = p.StepForward()
			Expect(ok).To(BeFalse())
			Expect(completions).To(Equal(1))
		})

		It("keeps the cursor in bounds for any call sequence", func() {
			moves := []bool{true, true, false, true, true, true, true, true, true, false, false, false, false, false, false, false, true}
			for _, fwd := range moves {
				if fwd {
					p.StepForward()
				} else {
					p.StepBackward()
				}
				Expect(p.Cursor()).To(BeNumerically(">=", 0))
				Expect(p.Cursor()).To(BeNumerically("<", tr.Len()))
			}
		})

		It("lets observers read the player while they are notified", func() {
			var live []int
			p.AddObserver(player.ObserverFunc(func(cursor int, step trace.Step) {
				live = append(live, p.Cursor())
				Expect(p.CurrentStep()).To(Equal(step))
			}))
			p.StepForward()
			p.StepForward()
			p.StepBackward()
			Expect(live).To(Equal([]int{1, 2, 1}))
			Expect(seen).To(Equal([]int{0, 1, 2, 1}))
		})

		It("returns equal steps from repeated reads", func() {
			p.StepForward()
			Expect(p.CurrentStep()).To(Equal(p.CurrentStep()))
		})
	})

	Describe("playback", func() {
		It("advances once per cadence", func() {
			p.Play(2.0)
			Expect(p.State()).To(Equal(player.Playing))
			Expect(player.Cadence(2.0)).To(Equal(500 * time.Millisecond))

			clock.Advance(1500 * time.Millisecond)
			Expect(p.Cursor()).To(Equal(3))
			Expect(seen).To(Equal([]int{0, 1, 2, 3}))
		})

		It("completes on the last step and stops", func() {
			p.Play(1)
			clock.Advance(time.Duration(tr.Len()-1) * time.Second)

			Expect(p.Cursor()).To(Equal(tr.Len() - 1))
			Expect(p.State()).To(Equal(player.Completed))
			Expect(completions).To(Equal(1))
			Expect(clock.Pending()).To(Equal(0))
		})

		It("fires completion once across pause and resume", func() {
			p.Play(1)
			for range 3 {
				clock.Advance(time.Second)
				p.Pause()
				clock.Advance(5 * time.Second)
				p.Play(1)
			}
			clock.Advance(time.Minute)
			Expect(completions).To(Equal(1))

			p.Play(1)
			p.StepForward()
			Expect(completions).To(Equal(1))
		})

		It("holds the cursor while paused", func() {
			p.Play(1)
			clock.Advance(time.Second)
			p.Pause()
			p.Pause()
			Expect(p.State()).To(Equal(player.Paused))
			Expect(clock.Pending()).To(Equal(0))

			clock.Advance(time.Minute)
			Expect(p.Cursor()).To(Equal(1))
		})

		It("keeps a single outstanding timer", func() {
			p.Play(1)
			p.StepForward()
			p.StepBackward()
			p.SetSpeed(3)
			p.Play(2)
			Expect(clock.Pending()).To(Equal(1))
		})

		It("does not resume after stepping back from completion", func() {
			p.Play(3)
			clock.Advance(time.Minute)
			Expect(p.State()).To(Equal(player.Completed))

			p.StepBackward()
			Expect(p.State()).To(Equal(player.Paused))
			Expect(clock.Pending()).To(Equal(0))
			clock.Advance(time.Minute)
			Expect(p.Cursor()).To(Equal(tr.Len() - 2))
		})

		It("restarts the notification after reset", func() {
			p.Play(3)
			clock.Advance(time.Minute)
			Expect(completions).To(Equal(1))

			p.Reset(tr)
			p.Play(3)
			clock.Advance(time.Minute)
			Expect(completions).To(Equal(2))
		})
	})

	Describe("speed", func() {
		DescribeTable("clamps and snaps",
			func(in, want float64) {
				Expect(player.ClampSpeed(in)).To(Equal(want))
			},
			Entry("below range", 0.1, 0.5),
			Entry("above range", 10.0, 3.0),
			Entry("in range", 1.5, 1.5),
			Entry("between steps", 1.3, 1.5),
		)

		It("uses the clamped speed for playback", func() {
			p.Play(100)
			Expect(p.Speed()).To(Equal(3.0))
		})
	})

	It("panics when navigating before a trace is loaded", func() {
		fresh := player.New(clock)
		Expect(func() { fresh.StepForward() }).To(Panic())
		Expect(func() { fresh.CurrentStep() }).To(Panic())
		Expect(fresh.Len()).To(Equal(0))
	})
})
