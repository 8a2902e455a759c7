package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-knapsack/api/v1alpha1"
	"github.com/llm-d/llm-d-knapsack/internal/cli"
)

func runKnapsack(args ...string) (*v1alpha1.SolveReport, error) {
	var out bytes.Buffer
	cmd := cli.NewRootCommand(afero.NewOsFs(), &out)
	cmd.SetErr(GinkgoWriter)
	cmd.SetArgs(append(args, "--output", "json"))
	if err := cmd.ExecuteContext(testCtx); err != nil {
		return nil, err
	}
	rep := &v1alpha1.SolveReport{}
	if err := json.Unmarshal(out.Bytes(), rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return rep, nil
}

// ladder writes n scenario items with values and costs cycling through small residues.
func ladder(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "    - {name: item-%02d, value: %d, cost: %d}\n", i, 3+(i*7)%23, 1+(i*5)%11)
	}
	return b.String()
}

var _ = Describe("knapsack solve", Ordered, func() {
	var dir string

	BeforeAll(func() {
		dir = GinkgoT().TempDir()
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(afero.WriteFile(afero.NewOsFs(), path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should reproduce the demo through a scenario file", func() {
		path := writeFile("projects.yaml", `
projects:
  capacity: 10
  items:
    - {name: A, value: 12, cost: 4}
    - {name: B, value: 10, cost: 3}
    - {name: C, value: 7, cost: 2}
    - {name: D, value: 4, cost: 3}
greedy-fails:
  capacity: 50
  items:
    - {name: Proj_X, value: 60, cost: 10}
    - {name: Proj_Y, value: 100, cost: 20}
    - {name: Proj_Z, value: 120, cost: 30}
`)
		fromFile, err := runKnapsack("solve", "-f", path)
		Expect(err).NotTo(HaveOccurred())
		demo, err := runKnapsack("demo")
		Expect(err).NotTo(HaveOccurred())

		for _, name := range []string{"projects", "greedy-fails"} {
			got, want := fromFile.Scenario(name), demo.Scenario(name)
			Expect(got).NotTo(BeNil())
			Expect(want).NotTo(BeNil())
			Expect(got.Optimum).To(Equal(want.Optimum))
			for _, res := range want.Results {
				Expect(got.Result(res.Strategy).Value).To(Equal(res.Value), res.Strategy)
				Expect(got.Result(res.Strategy).SelectedNames).To(Equal(res.SelectedNames), res.Strategy)
			}
		}
	})

	It("should agree across exact strategies on a larger instance", func() {
		path := writeFile("ladder.yaml", "ladder:\n  capacity: 40\n  items:\n"+ladder(18))
		rep, err := runKnapsack("solve", "-f", path)
		Expect(err).NotTo(HaveOccurred())

		sc := rep.Scenario("ladder")
		Expect(sc).NotTo(BeNil())
		Expect(sc.Optimum).NotTo(BeNil())
		var selections [][]int
		for _, res := range sc.Results {
			Expect(res.Succeeded()).To(BeTrue(), res.Strategy)
			Expect(res.Cost).To(BeNumerically("<=", sc.Capacity), res.Strategy)
			Expect(*res.Gap).To(BeNumerically(">=", 0), res.Strategy)
			if res.Exact {
				selections = append(selections, res.Selected)
			}
		}
		Expect(selections).To(HaveLen(3))
		Expect(selections[1]).To(Equal(selections[0]))
		Expect(selections[2]).To(Equal(selections[0]))

		Expect(sc.Result("memoized").Evaluations).To(BeNumerically("<", sc.Result("recursive").Evaluations))
	})

	It("should skip the recursive strategy above its item limit", func() {
		path := writeFile("wide.yaml", "wide:\n  capacity: 30\n  items:\n"+ladder(30))
		rep, err := runKnapsack("solve", "-f", path, "--max-recursive-items", "20")
		Expect(err).NotTo(HaveOccurred())

		sc := rep.Scenario("wide")
		Expect(sc).NotTo(BeNil())
		Expect(sc.Result("recursive").Succeeded()).To(BeFalse())
		Expect(sc.Result("recursive").Error).To(ContainSubstring("exceeds strategy limits"))
		Expect(sc.Result("bottom-up").Optimal()).To(BeTrue())
		Expect(sc.Result("memoized").Optimal()).To(BeTrue())
	})

	It("should honor per-scenario strategies and limits", func() {
		path := writeFile("mixed.yaml", `
tight:
  capacity: 12
  strategies: [greedy, dp]
  maxTableCells: 20
  items:
    - {name: a, value: 5, cost: 4}
    - {name: b, value: 4, cost: 3}
    - {name: c, value: 3, cost: 2}
`)
		rep, err := runKnapsack("solve", "-f", path)
		Expect(err).NotTo(HaveOccurred())

		sc := rep.Scenario("tight")
		Expect(sc).NotTo(BeNil())
		Expect(sc.Results).To(HaveLen(2))
		Expect(sc.Result("bottom-up").Succeeded()).To(BeFalse())
		Expect(sc.Optimum).To(BeNil())
		Expect(sc.Result("greedy").Value).To(Equal(12))
	})

	It("should reject scenario files with negative costs", func() {
		path := writeFile("broken.yaml", `
broken:
  capacity: 5
  items:
    - {name: a, value: 5, cost: -1}
`)
		_, err := runKnapsack("solve", "-f", path)
		Expect(err).To(MatchError(ContainSubstring("items[0].cost")))
	})

	It("should write a YAML report", func() {
		var out bytes.Buffer
		cmd := cli.NewRootCommand(afero.NewOsFs(), &out)
		cmd.SetErr(GinkgoWriter)
		cmd.SetArgs([]string{"demo", "-o", "yaml"})
		Expect(cmd.ExecuteContext(testCtx)).To(Succeed())

		rep := &v1alpha1.SolveReport{}
		Expect(yaml.Unmarshal(out.Bytes(), rep)).To(Succeed())
		Expect(rep.Kind).To(Equal(v1alpha1.SolveReportKind))
		Expect(rep.Scenarios).To(HaveLen(2))
	})
})
