package metrics_test

import (
	"fmt"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/utkarsh5026/matmul/metrics"
)

var names = []string{"calls", "errors", "inflight", "worker.0.cells", "worker.1.cells"}

var _ = Describe("Registry", func() {
	implementations := []struct {
		label string
		build func() metrics.Registry
	}{
		{"map", metrics.NewMap},
		{"fixed", func() metrics.Registry { return metrics.NewFixed(names...) }},
		{"sharded", func() metrics.Registry { return metrics.NewSharded(4) }},
	}

	for _, impl := range implementations {
		build := impl.build
		Context(impl.label, func() {
			var r metrics.Registry

			BeforeEach(func() {
				r = build()
			})

			It("counts increments and decrements", func() {
				Expect(r.Increment("calls")).To(Succeed())
				Expect(r.Increment("calls")).To(Succeed())
				Expect(r.Increment("inflight")).To(Succeed())
				Expect(r.Decrement("inflight")).To(Succeed())
				Expect(r.Decrement("errors")).To(Succeed())

				snap := r.Snapshot()
				Expect(snap).To(HaveKeyWithValue("calls", int64(2)))
				Expect(snap).To(HaveKeyWithValue("inflight", int64(0)))
				Expect(snap).To(HaveKeyWithValue("errors", int64(-1)))
			})

			It("returns a snapshot detached from later updates", func() {
				Expect(r.Increment("calls")).To(Succeed())
				snap := r.Snapshot()
				Expect(r.Increment("calls")).To(Succeed())

				Expect(snap["calls"]).To(Equal(int64(1)))
				Expect(r.Snapshot()["calls"]).To(Equal(int64(2)))
			})

			It("is safe under concurrent updates", func() {
				const goroutines, perG = 16, 500
				var wg sync.WaitGroup
				for g := range goroutines {
					wg.Add(1)
					go func() {
						defer wg.Done()
						worker := fmt.Sprintf("worker.%d.cells", g%2)
						for range perG {
							_ = r.Increment("calls")
							_ = r.Increment(worker)
							_ = r.Increment("inflight")
							_ = r.Decrement("inflight")
						}
					}()
				}
				wg.Wait()

				snap := r.Snapshot()
				Expect(snap["calls"]).To(Equal(int64(goroutines * perG)))
				Expect(snap["worker.0.cells"] + snap["worker.1.cells"]).To(Equal(int64(goroutines * perG)))
				Expect(snap["inflight"]).To(BeZero())
			})

			It("renders sorted name: value lines", func() {
				Expect(r.Increment("worker.1.cells")).To(Succeed())
				Expect(r.Increment("calls")).To(Succeed())
				Expect(r.Increment("calls")).To(Succeed())

				out := r.String()
				Expect(out).To(ContainSubstring("calls: 2\n"))
				Expect(out).To(ContainSubstring("worker.1.cells: 1\n"))
				Expect(strings.Index(out, "calls:")).To(BeNumerically("<", strings.Index(out, "worker.1.cells:")))
			})
		})
	}

	Context("fixed", func() {
		It("rejects unknown counters", func() {
			r := metrics.NewFixed("a", "a", "b")
			err := r.Increment("c")
			Expect(err).To(MatchError(metrics.ErrUnknownCounter))
			Expect(r.Decrement("c")).To(MatchError(metrics.ErrUnknownCounter))
			Expect(r.Snapshot()).To(HaveLen(2))
		})

		It("pre-registers every name at zero", func() {
			r := metrics.NewFixed(names...)
			snap := r.Snapshot()
			Expect(snap).To(HaveLen(len(names)))
			for _, n := range names {
				Expect(snap).To(HaveKeyWithValue(n, int64(0)))
			}
		})
	})

	Context("sharded", func() {
		It("falls back to a default shard count", func() {
			r := metrics.NewSharded(0)
			for i := range 100 {
				Expect(r.Increment(fmt.Sprintf("c%d", i))).To(Succeed())
			}
			Expect(r.Snapshot()).To(HaveLen(100))
		})
	})

	Context("map", func() {
		It("creates counters lazily", func() {
			r := metrics.NewMap()
			Expect(r.Snapshot()).To(BeEmpty())
			Expect(r.String()).To(BeEmpty())
		})
	})
})
