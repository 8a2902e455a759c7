package runner

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-knapsack/api/v1alpha1"
	"github.com/llm-d/llm-d-knapsack/internal/config"
	"github.com/llm-d/llm-d-knapsack/internal/scenario"
	"github.com/llm-d/llm-d-knapsack/pkg/core"
	"github.com/llm-d/llm-d-knapsack/pkg/solver"
)

type countingRecorder struct {
	calls int
}

func (c *countingRecorder) ObserveSolve(solver.Strategy, time.Duration, solver.Stats, error) {
	c.calls++
}

func newTestRunner(cfg *Config) *Runner {
	r, err := NewRunner(cfg)
	Expect(err).NotTo(HaveOccurred())
	r.newRunID = func() string { return "test-run" }
	r.now = func() time.Time { return time.Unix(1730000000, 0) }
	return r
}

var _ = Describe("Runner", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with nil config", func() {
		It("should fail to construct", func() {
			_, err := NewRunner(nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with the built-in scenarios", func() {
		It("should report every strategy and the greedy gap", func() {
			rec := &countingRecorder{}
			r := newTestRunner(&Config{Recorder: rec})

			report, err := r.Run(ctx, scenario.Builtin())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.RunID).To(Equal("test-run"))
			Expect(report.Kind).To(Equal(v1alpha1.SolveReportKind))
			Expect(report.GeneratedAt.Time).To(BeTemporally("==", time.Unix(1730000000, 0)))
			Expect(report.Scenarios).To(HaveLen(2))
			Expect(rec.calls).To(Equal(8))

			projects := report.Scenario(scenario.ProjectsName)
			Expect(projects).NotTo(BeNil())
			Expect(projects.Optimum).To(Equal(ptr.To(29)))
			Expect(projects.Results).To(HaveLen(4))
			Expect(projects.Suboptimal()).To(BeEmpty())
			Expect(projects.Result("bottom-up").SelectedNames).To(Equal([]string{"A", "B", "C"}))
			Expect(projects.Result("bottom-up").Evaluations).To(Equal(44))
			Expect(projects.Result("greedy").Selected).To(Equal([]int{2, 1, 0}))

			tough := report.Scenario(scenario.ToughName)
			Expect(tough).NotTo(BeNil())
			Expect(tough.Optimum).To(Equal(ptr.To(220)))
			greedy := tough.Result("greedy")
			Expect(greedy.Value).To(Equal(160))
			Expect(greedy.Cost).To(Equal(30))
			Expect(greedy.Gap).To(Equal(ptr.To(60)))
			Expect(greedy.SelectedNames).To(Equal([]string{"Proj_X", "Proj_Y"}))
			for _, name := range []string{"recursive", "memoized", "bottom-up"} {
				res := tough.Result(name)
				Expect(res.Optimal()).To(BeTrue(), name)
				Expect(res.SelectedNames).To(Equal([]string{"Proj_Y", "Proj_Z"}), name)
			}
		})
	})

	Context("with a scenario over the recursive limit", func() {
		It("should record the error and keep the other strategies", func() {
			sc := scenario.Projects()
			sc.MaxRecursiveItems = ptr.To(2)

			r := newTestRunner(&Config{})
			sr, err := r.RunScenario(ctx, sc)
			Expect(err).NotTo(HaveOccurred())

			rec := sr.Result("recursive")
			Expect(rec.Succeeded()).To(BeFalse())
			Expect(rec.Error).To(ContainSubstring("at most 2 items"))
			Expect(rec.Gap).To(BeNil())
			Expect(sr.Optimum).To(Equal(ptr.To(29)))
		})

		It("should leave the optimum unknown when only greedy runs", func() {
			sc := scenario.Tough()
			sc.Strategies = []string{"greedy"}

			sr, err := newTestRunner(&Config{}).RunScenario(ctx, sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(sr.Optimum).To(BeNil())
			Expect(sr.Results).To(HaveLen(1))
			Expect(sr.Results[0].Gap).To(BeNil())
		})
	})

	Context("with an item costing more than any capacity", func() {
		It("should keep greedy within capacity and at the optimum", func() {
			sc := config.ScenarioConfig{
				Name:     "huge",
				Capacity: 5,
				Items: []config.ItemConfig{
					{Name: "a", Value: 10, Cost: 1},
					{Name: "huge", Value: 1, Cost: math.MaxInt},
				},
			}
			sr, err := newTestRunner(&Config{}).RunScenario(ctx, sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(sr.Optimum).To(Equal(ptr.To(10)))
			greedy := sr.Result("greedy")
			Expect(greedy.Cost).To(Equal(1))
			Expect(greedy.Gap).To(Equal(ptr.To(0)))
		})
	})

	Context("with an invalid scenario", func() {
		It("should fail the run before solving", func() {
			rec := &countingRecorder{}
			bad := config.ScenarioConfig{
				Name:     "bad",
				Capacity: 5,
				Items:    []config.ItemConfig{{Name: "A", Value: 3, Cost: -1}},
			}
			_, err := newTestRunner(&Config{Recorder: rec}).Run(ctx, []config.ScenarioConfig{bad})
			Expect(errors.Is(err, core.ErrInvalidInput)).To(BeTrue())
			Expect(rec.calls).To(BeZero())
		})
	})

	Context("when comparing results", func() {
		It("should reject exact strategies that disagree", func() {
			sr := &v1alpha1.ScenarioReport{
				Results: []v1alpha1.StrategyResult{
					{Strategy: "memoized", Exact: true, Value: 10},
					{Strategy: "bottom-up", Exact: true, Value: 11},
				},
			}
			Expect(compare(sr)).To(MatchError(ErrStrategiesDisagree))
		})

		It("should ignore failed exact strategies", func() {
			sr := &v1alpha1.ScenarioReport{
				Results: []v1alpha1.StrategyResult{
					{Strategy: "greedy", Value: 7},
					{Strategy: "recursive", Exact: true, Error: "too big"},
					{Strategy: "bottom-up", Exact: true, Value: 9},
				},
			}
			Expect(compare(sr)).To(Succeed())
			Expect(sr.Optimum).To(Equal(ptr.To(9)))
			Expect(sr.Results[0].Gap).To(Equal(ptr.To(2)))
			Expect(sr.Results[1].Gap).To(BeNil())
		})
	})
})
