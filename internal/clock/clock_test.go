package clock

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clock", func() {
	var (
		c  *Clock
		t0 time.Time
	)

	BeforeEach(func() {
		c = New()
		t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	})

	It("starts idle at round zero", func() {
		Expect(c.Rounds()).To(BeZero())
		Expect(c.Running()).To(BeFalse())
	})

	It("only captures the reference on the first tick", func() {
		c.SetSpeed(5)
		Expect(c.Tick(t0)).To(BeZero())
		Expect(c.Running()).To(BeTrue())
	})

	It("advances by elapsed minutes times speed", func() {
		c.SetSpeed(2)
		c.Tick(t0)
		Expect(c.Tick(t0.Add(30 * time.Second))).To(BeNumerically("~", 1.0, 1e-12))
		Expect(c.Tick(t0.Add(90 * time.Second))).To(BeNumerically("~", 3.0, 1e-12))
	})

	It("runs backwards with a negative speed", func() {
		c.SetSpeed(-1)
		c.Tick(t0)
		c.Tick(t0.Add(time.Minute))
		Expect(c.Rounds()).To(BeNumerically("~", -1.0, 1e-12))
	})

	DescribeTable("accumulation does not depend on tick granularity",
		func(ticks int, speed float64) {
			c.SetSpeed(speed)
			total := 7*time.Second + 345*time.Millisecond
			for i := 0; i <= ticks; i++ {
				c.Tick(t0.Add(total * time.Duration(i) / time.Duration(ticks)))
			}
			want := total.Minutes() * speed
			Expect(c.Rounds()).To(BeNumerically("~", want, 1e-9))
		},
		Entry("single interval", 1, 2.0),
		Entry("display rate", 441, 2.0),
		Entry("many ticks", 10000, -3.5),
		Entry("irregular count", 37, 0.1),
	)

	It("reads the speed afresh on every tick", func() {
		c.SetSpeed(1)
		c.Tick(t0)
		c.Tick(t0.Add(time.Minute))
		c.SetSpeed(10)
		c.Tick(t0.Add(2 * time.Minute))
		Expect(c.Rounds()).To(BeNumerically("~", 11.0, 1e-12))
	})

	It("ignores time going backwards", func() {
		c.SetSpeed(1)
		c.Tick(t0.Add(time.Minute))
		c.Tick(t0)
		Expect(c.Rounds()).To(BeZero())
		c.Tick(t0.Add(30 * time.Second))
		Expect(c.Rounds()).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("does not jump after a pause", func() {
		c.SetSpeed(1)
		c.Tick(t0)
		c.Tick(t0.Add(time.Minute))
		c.Pause()
		Expect(c.Running()).To(BeFalse())
		c.Tick(t0.Add(10 * time.Minute))
		Expect(c.Rounds()).To(BeNumerically("~", 1.0, 1e-12))
		c.Tick(t0.Add(11 * time.Minute))
		Expect(c.Rounds()).To(BeNumerically("~", 2.0, 1e-12))
	})

	Describe("external updates", func() {
		It("sets and offsets against the latest value", func() {
			c.SetSpeed(1)
			c.Tick(t0)
			c.Tick(t0.Add(time.Minute))
			Expect(c.Offset(0.5)).To(Succeed())
			Expect(c.Rounds()).To(BeNumerically("~", 1.5, 1e-12))

			c.Tick(t0.Add(2 * time.Minute))
			Expect(c.Rounds()).To(BeNumerically("~", 2.5, 1e-12))

			Expect(c.Set(0)).To(Succeed())
			c.Tick(t0.Add(3 * time.Minute))
			Expect(c.Rounds()).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("loses no update when racing with ticks", func() {
			c.SetSpeed(0)
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_ = c.Offset(1)
				}()
				go func(i int) {
					defer wg.Done()
					c.Tick(t0.Add(time.Duration(i) * time.Millisecond))
				}(i)
			}
			wg.Wait()
			Expect(c.Rounds()).To(Equal(50.0))
		})
	})

	Describe("Stop", func() {
		It("is idempotent and freezes the rounds", func() {
			c.SetSpeed(1)
			c.Tick(t0)
			c.Tick(t0.Add(time.Minute))
			c.Stop()
			c.Stop()

			Expect(c.Stopped()).To(BeTrue())
			Expect(c.Running()).To(BeFalse())
			Expect(c.Tick(t0.Add(5 * time.Minute))).To(BeNumerically("~", 1.0, 1e-12))
			Expect(c.Set(3)).To(MatchError(ErrStopped))
			Expect(c.Offset(3)).To(MatchError(ErrStopped))
			Expect(c.Rounds()).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Describe("Run", func() {
		It("ticks from the channel and stops when it closes", func() {
			c.SetSpeed(6)
			ticks := make(chan time.Time)
			done := make(chan error, 1)
			go func() { done <- c.Run(context.Background(), ticks) }()

			ticks <- t0
			ticks <- t0.Add(10 * time.Second)
			close(ticks)

			Eventually(done).Should(Receive(BeNil()))
			Expect(c.Rounds()).To(BeNumerically("~", 1.0, 1e-12))
			Expect(c.Stopped()).To(BeTrue())
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- c.Run(ctx, make(chan time.Time)) }()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
			Expect(c.Offset(1)).To(MatchError(ErrStopped))
		})

		It("drives itself from a ticker", func() {
			c.SetSpeed(60)
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			err := c.Drive(ctx, 5*time.Millisecond)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(c.Ticks()).To(BeNumerically(">", 1))
			Expect(c.Rounds()).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("SpeedCell", func() {
	It("stores and loads floats", func() {
		var s SpeedCell
		Expect(s.Load()).To(BeZero())
		s.Store(-2.75)
		Expect(s.Load()).To(Equal(-2.75))
	})
})
