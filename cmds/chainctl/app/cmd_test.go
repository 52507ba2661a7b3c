package app_test

import (
	"bytes"
	"os"
	"strings"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/chaincomposer/cmds/chainctl/app"
	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/gp"
	"github.com/mandelsoft/chaincomposer/pkg/models"
)

const FIRST = "XGBoost(XGBoost(KNN,LDA),MLP(KNN,LDA))"
const SECOND = "XGBoost(XGBoost(LogisticRegression,XGBoost(KNN,LDA)),XGBoost(LogisticRegression,LDA))"

const SPEC = `
name: ${CHAIN_NAME}
root:
  type: XGBoost
  params:
    estimators: 20
  parents:
  - type: KNN
    input: train
  - type: LDA
`

var _ = Describe("chainctl", func() {
	var fs vfs.FileSystem
	var cmd *cobra.Command
	var buf *bytes.Buffer

	BeforeEach(func() {
		fs = memoryfs.New()
		buf = bytes.NewBuffer(nil)
		cmd = app.New(fs)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		os.Setenv("CHAIN_NAME", "demo")
		DeferCleanup(func() {
			os.Unsetenv("CHAIN_NAME")
		})
		MustBeSuccessful(vfs.WriteFile(fs, "chain.yaml", []byte(SPEC), 0o600))
	})

	Context("equal", func() {
		It("reports equal chains", func() {
			cmd.SetArgs([]string{"equal", "XGBoost(KNN[neighbors=3],LDA)", "chain.yaml"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(Equal("equal\n"))
		})

		It("reports different chains", func() {
			cmd.SetArgs([]string{"equal", FIRST, SECOND})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(Equal("different\n"))
		})

		It("fails in quiet mode", func() {
			cmd.SetArgs([]string{"equal", "-q", FIRST, SECOND})
			Expect(cmd.Execute()).To(MatchError("chains are different"))
		})

		It("provides fingerprints", func() {
			fp := Must(Must(chain.Parse(FIRST)).Fingerprint())
			cmd.SetArgs([]string{"-o", "yaml", "equal", FIRST, FIRST})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(MatchYAML(`
equal: true
fingerprint: ` + fp + `
fingerprint2: ` + fp + `
`))
		})

		It("rejects invalid notations", func() {
			cmd.SetArgs([]string{"equal", "XGBoost(", FIRST})
			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no file and invalid chain notation"))
		})
	})

	Context("match", func() {
		It("lists equivalent nodes", func() {
			cmd.SetArgs([]string{"match", "XGBoost(XGBoost(LogisticRegression,LDA),KNN(LogisticRegression,LDA))", "XGBoost(XGBoost(LogisticRegression,XGBoost(KNN,LDA)),KNN(LogisticRegression,LDA))"})
			MustBeSuccessful(cmd.Execute())
			Expect("\n" + buf.String()).To(Equal(`
XGBoost(XGBoost(LogisticRegression,LDA),KNN(LogisticRegression,LDA)) <-> XGBoost(XGBoost(LogisticRegression,XGBoost(KNN,LDA)),KNN(LogisticRegression,LDA))
XGBoost(LogisticRegression,LDA) <-> XGBoost(LogisticRegression,XGBoost(KNN,LDA))
LogisticRegression <-> LogisticRegression
KNN(LogisticRegression,LDA) <-> KNN(LogisticRegression,LDA)
LogisticRegression <-> LogisticRegression
LDA <-> LDA
`))
		})

		It("reports no match", func() {
			cmd.SetArgs([]string{"match", "XGBoost(KNN,LDA)", "XGBoost(KNN,LDA,LDA)"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(Equal("no equivalent nodes found\n"))
		})

		It("provides json", func() {
			cmd.SetArgs([]string{"match", "-o", "json", "XGBoost(KNN)", "XGBoost(KNN)"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(MatchJSON(`[
{"type":"XGBoost","first":"XGBoost(KNN)","second":"XGBoost(KNN)"},
{"type":"KNN","first":"KNN","second":"KNN"}
]`))
		})
	})

	Context("describe", func() {
		It("describes chain files", func() {
			fp := Must(Must(chain.Parse("XGBoost(KNN,LDA)")).Fingerprint())
			cmd.SetArgs([]string{"describe", "chain.yaml"})
			MustBeSuccessful(cmd.Execute())
			Expect("\n" + buf.String()).To(Equal(`
name:        demo
fingerprint: ` + fp + `
nodes:       3
depth:       1
XGBoost[1/0] (
  KNN@train[0/1],
  LDA[0/1]
)
`))
		})

		It("provides yaml", func() {
			cmd.SetArgs([]string{"describe", "-o", "yaml", "chain.yaml"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(MatchYAML(`
name: demo
fingerprint: ` + Must(Must(chain.Parse("XGBoost(KNN,LDA)")).Fingerprint()) + `
nodes: 3
depth: 1
spec:
  name: demo
  root:
    type: XGBoost
    params:
      estimators: 20
    parents:
    - type: KNN
      input: train
    - type: LDA
`))
		})

		It("reads stdin", func() {
			cmd.SetIn(strings.NewReader(SPEC))
			cmd.SetArgs([]string{"describe", "-"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(HavePrefix("name:        demo\n"))
		})
	})

	Context("swap", func() {
		It("swaps given subtrees", func() {
			cmd.SetArgs([]string{"swap", "--first", "1", "--second", "0", "--seed", "1", FIRST, SECOND})
			MustBeSuccessful(cmd.Execute())
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(len(lines)).To(Equal(2))
			Expect(lines[0]).To(HaveSuffix(": XGBoost(XGBoost(KNN,LDA),XGBoost(LogisticRegression,XGBoost(KNN,LDA)))"))
			Expect(lines[1]).To(HaveSuffix(": XGBoost(MLP(KNN,LDA),XGBoost(LogisticRegression,LDA))"))
		})

		It("rejects roots", func() {
			cmd.SetArgs([]string{"swap", "--first", "", "--second", "0", FIRST, SECOND})
			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(gp.ErrRootSwap.Error()))
		})

		It("rejects invalid paths", func() {
			cmd.SetArgs([]string{"swap", "--first", "0/5", "--second", "0", FIRST, SECOND})
			err := cmd.Execute()
			Expect(err).To(MatchError(`first chain: tree path "0/5" not found`))
		})

		It("swaps random subtrees", func() {
			cmd.SetArgs([]string{"swap", "--seed", "1", "-o", "yaml", FIRST, SECOND})
			MustBeSuccessful(cmd.Execute())
			var specs []*chain.Spec
			MustBeSuccessful(yaml.Unmarshal(buf.Bytes(), &specs))
			Expect(len(specs)).To(Equal(2))
			size := 0
			for _, s := range specs {
				c := Must(chain.FromSpec(s))
				MustBeSuccessful(c.Validate())
				size += c.Len()
			}
			Expect(size).To(Equal(16))
		})
	})

	Context("random", func() {
		It("is reproducible", func() {
			cmd.SetArgs([]string{"random", "--seed", "42", "5"})
			MustBeSuccessful(cmd.Execute())
			first := buf.String()
			Expect(strings.Count(first, "\n")).To(Equal(5))

			buf.Reset()
			cmd = app.New(fs)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"random", "--seed", "42", "5"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(Equal(first))
		})

		It("uses the configuration", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "config.yaml", []byte(`
output: yaml
generator:
  types: [ XGBoost ]
  sources: [ KNN ]
  maxDepth: 1
  minDepth: 1
  maxArity: 1
`), 0o600))
			cmd.SetArgs([]string{"--config", "config.yaml", "random", "--seed", "1"})
			MustBeSuccessful(cmd.Execute())
			var spec chain.Spec
			MustBeSuccessful(yaml.Unmarshal(buf.Bytes(), &spec))
			Expect(spec.Name).NotTo(BeEmpty())
			c := Must(chain.FromSpec(&spec))
			Expect(c.String()).To(Equal("XGBoost(KNN)"))
		})

		It("overrides the configuration by flags", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "config.yaml", []byte(`
generator:
  types: [ XGBoost ]
  sources: [ KNN ]
`), 0o600))
			cmd.SetArgs([]string{"--config", "config.yaml", "random", "--sources", models.TYPE_LDA, "--max-depth", "1", "--min-depth", "1", "--max-arity", "1"})
			MustBeSuccessful(cmd.Execute())
			Expect(buf.String()).To(HaveSuffix(": XGBoost(LDA)\n"))
		})

		It("rejects invalid counts", func() {
			cmd.SetArgs([]string{"random", "zero"})
			Expect(cmd.Execute()).To(MatchError(`invalid count "zero"`))
		})
	})

	Context("options", func() {
		It("rejects invalid output formats", func() {
			cmd.SetArgs([]string{"-o", "xml", "equal", FIRST, FIRST})
			Expect(cmd.Execute()).To(MatchError(`invalid output format "xml"`))
		})

		It("rejects missing config files", func() {
			cmd.SetArgs([]string{"--config", "missing.yaml", "equal", FIRST, FIRST})
			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`cannot read config file "missing.yaml"`))
		})

		It("rejects invalid log levels", func() {
			cmd.SetArgs([]string{"-L", "verbose", "equal", FIRST, FIRST})
			Expect(cmd.Execute()).To(HaveOccurred())
		})
	})
})
