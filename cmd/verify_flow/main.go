// verify_flow 无窗口地走完一遍完整流程，打印每一步看到的阶段和按钮文字
//
// 用法（在仓库根目录）：
//
//	go run ./cmd/verify_flow
//	go run ./cmd/verify_flow --declines 5 --seed 42 --verbose
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/decker502/valentine/pkg/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	frame        = time.Second / 60
	maxGameTicks = 60 * 60 // 一分钟内必须接满
)

var (
	verbose     bool
	contentPath string
	declines    int
	seed        int64
)

var rootCmd = &cobra.Command{
	Use:          "verify_flow",
	Short:        "Play a scripted session and print every stage it passes through",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}
		if !verbose {
			logger = zap.NewNop()
		}

		content, err := config.LoadContent(contentPath)
		if err != nil {
			return err
		}

		c := flow.NewController(content, config.DefaultGameplay(), rand.New(rand.NewSource(seed)), logger)
		defer c.Close()

		stages, err := play(c, view.DefaultLayout(config.DefaultGameplay()), declines, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return checkStages(stages)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
	rootCmd.Flags().StringVarP(&contentPath, "content", "c", "data/content.yaml", "文案文件")
	rootCmd.Flags().IntVarP(&declines, "declines", "d", 4, "接受之前点击拒绝的次数")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "爱心随机种子")
}

// play 通过视图树点击按钮走完流程，返回经过的阶段序列（包括重启后的 welcome）
func play(c *flow.Controller, layout view.Layout, declines int, out io.Writer) ([]flow.Stage, error) {
	var stages []flow.Stage
	c.OnStageChange(func(from, to flow.Stage) {
		stages = append(stages, to)
	})
	stages = append(stages, c.CurrentStage())

	tree := func() view.Tree { return view.Build(c.Snapshot(), c.Content(), layout) }
	click := func(label string) error {
		t := tree()
		for _, b := range t.Buttons() {
			if b.Text != label {
				continue
			}
			x, y := b.Bounds().Center()
			action, ok := t.HitTest(x, y)
			if !ok || !action.Apply(c) {
				return fmt.Errorf("button %q at (%.0f, %.0f) did not respond in %s", label, x, y, c.CurrentStage())
			}
			return nil
		}
		return fmt.Errorf("no button %q in %s (have %s)", label, c.CurrentStage(), labels(t))
	}

	content := c.Content()
	fmt.Fprintf(out, "[%s] %s\n", c.CurrentStage(), content.Greeting.Headline)
	if err := click(content.Greeting.StartButton); err != nil {
		return stages, err
	}

	// 小游戏：每帧点击第一个可以点中的爱心
	ticks := 0
	for c.CurrentStage() == flow.StageGame {
		if ticks++; ticks > maxGameTicks {
			return stages, fmt.Errorf("game did not finish after %d ticks (score %d/%d)", maxGameTicks, c.Score(), c.Goal())
		}
		c.Update(frame)
		t := tree()
		for _, h := range t.Filter(view.KindHeart) {
			action, ok := t.HitTest(h.Bounds().Center())
			if ok && action.Apply(c) {
				fmt.Fprintf(out, "[game] caught heart %d (%d/%d) at %s\n",
					action.Heart, c.Score(), c.Goal(), time.Duration(ticks)*frame)
				break
			}
		}
	}

	for c.CurrentStage() == flow.StageReasons {
		i := c.ReasonIndex()
		t := tree()
		fmt.Fprintf(out, "[reasons] %d. %s\n", i+1, strings.Join(content.Reason(i), " "))
		label := content.Reasons.NextButton
		if i == content.LastReasonIndex() {
			label = content.Reasons.ContinueButton
		}
		if _, ok := t.PrimaryAction(); !ok {
			return stages, fmt.Errorf("reason %d has no button", i)
		}
		if err := click(label); err != nil {
			return stages, err
		}
	}

	fmt.Fprintf(out, "[question] %s\n", content.Question.Prompt)
	for i := 0; i < declines; i++ {
		label := c.DeclineLabel()
		if err := click(label); err != nil {
			return stages, err
		}
		fmt.Fprintf(out, "[question] declined %q -> %q\n", label, c.DeclineLabel())
	}
	if err := click(content.Question.AcceptButton); err != nil {
		return stages, err
	}

	fmt.Fprintf(out, "[yes] %s | %s %s | %s %s\n", content.Celebration.Headline,
		content.Celebration.VenueLabel, content.Celebration.Venue,
		content.Celebration.TimeLabel, content.Celebration.Time)
	if err := click(content.Celebration.ContinueButton); err != nil {
		return stages, err
	}

	fmt.Fprintf(out, "[final] %s\n", content.Closing.Message)
	if err := click(content.Closing.RestartButton); err != nil {
		return stages, err
	}
	fmt.Fprintf(out, "[%s] restarted, score=%d reasonIndex=%d noIndex=%d\n",
		c.CurrentStage(), c.Score(), c.ReasonIndex(), c.NoIndex())
	return stages, nil
}

// checkStages 确认阶段按预期顺序出现
func checkStages(stages []flow.Stage) error {
	want := []flow.Stage{
		flow.StageWelcome, flow.StageGame, flow.StageReasons, flow.StageQuestion,
		flow.StageYes, flow.StageFinal, flow.StageWelcome,
	}
	if len(stages) != len(want) {
		return fmt.Errorf("stage sequence %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			return fmt.Errorf("stage %d is %s, want %s", i, stages[i], want[i])
		}
	}
	return nil
}

func labels(t view.Tree) string {
	var ls []string
	for _, b := range t.Buttons() {
		ls = append(ls, fmt.Sprintf("%q", b.Text))
	}
	return "[" + strings.Join(ls, ", ") + "]"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
