package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/decker502/valentine/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Content 页面文案配置
// 所有展示文字都来自这里，核心逻辑只通过索引读取
type Content struct {
	Greeting    GreetingContent    `yaml:"greeting"`
	Game        GameContent        `yaml:"game"`
	Reasons     ReasonsContent     `yaml:"reasons"`
	Question    QuestionContent    `yaml:"question"`
	Celebration CelebrationContent `yaml:"celebration"`
	Closing     ClosingContent     `yaml:"closing"`
}

// GreetingContent 欢迎页文案
type GreetingContent struct {
	Headline    string `yaml:"headline"`
	Subtitle    string `yaml:"subtitle"`
	StartButton string `yaml:"startButton"`
}

// GameContent 小游戏文案
type GameContent struct {
	CounterLabel string `yaml:"counterLabel"` // 计数器前缀，如 "Hearts Collected"
	GoalReached  string `yaml:"goalReached"`  // 达成目标时的遮罩文字
}

// ReasonsContent 理由页文案
type ReasonsContent struct {
	Heading        string     `yaml:"heading"`
	Prefix         string     `yaml:"prefix"`
	NextButton     string     `yaml:"nextButton"`
	ContinueButton string     `yaml:"continueButton"`
	Entries        [][]string `yaml:"entries"`
}

// QuestionContent 提问页文案
type QuestionContent struct {
	Prompt        string   `yaml:"prompt"`
	AcceptButton  string   `yaml:"acceptButton"`
	DeclineLabels []string `yaml:"declineLabels"` // 循环显示
}

// CelebrationContent 答应后的庆祝页文案
type CelebrationContent struct {
	Headline       string `yaml:"headline"`
	VenueLabel     string `yaml:"venueLabel"`
	Venue          string `yaml:"venue"`
	TimeLabel      string `yaml:"timeLabel"`
	Time           string `yaml:"time"`
	ContinueButton string `yaml:"continueButton"`
}

// ClosingContent 结束页文案
type ClosingContent struct {
	Message       string `yaml:"message"`
	RestartButton string `yaml:"restartButton"`
}

// ParseContent 解析并校验 YAML 文案
func ParseContent(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse content YAML: %w", err)
	}

	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content config: %w", err)
	}

	return &content, nil
}

// LoadContent 从文件加载文案配置
func LoadContent(filePath string) (*Content, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return ParseContent(data)
}

// LoadDefaultContent 加载内置文案（data/content.yaml）
// 调用前必须先调用 embedded.Init()
func LoadDefaultContent() (*Content, error) {
	data, err := embedded.ReadFile(embedded.DefaultContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded content: %w", err)
	}
	return ParseContent(data)
}

// ResolveContent 优先从外部文件加载，路径为空时使用内置文案
func ResolveContent(filePath string) (*Content, error) {
	if filePath == "" {
		return LoadDefaultContent()
	}
	return LoadContent(filePath)
}

// Validate 验证配置的有效性
func (c *Content) Validate() error {
	var errs []error

	required := []struct {
		key   string
		value string
	}{
		{"greeting.headline", c.Greeting.Headline},
		{"greeting.startButton", c.Greeting.StartButton},
		{"game.counterLabel", c.Game.CounterLabel},
		{"reasons.nextButton", c.Reasons.NextButton},
		{"reasons.continueButton", c.Reasons.ContinueButton},
		{"question.prompt", c.Question.Prompt},
		{"question.acceptButton", c.Question.AcceptButton},
		{"celebration.headline", c.Celebration.Headline},
		{"celebration.continueButton", c.Celebration.ContinueButton},
		{"closing.message", c.Closing.Message},
		{"closing.restartButton", c.Closing.RestartButton},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s cannot be empty", field.key))
		}
	}

	if len(c.Reasons.Entries) == 0 {
		errs = append(errs, errors.New("reasons.entries cannot be empty"))
	}
	for i, entry := range c.Reasons.Entries {
		if len(entry) == 0 {
			errs = append(errs, fmt.Errorf("reasons.entries[%d] has no lines", i))
			continue
		}
		for j, line := range entry {
			if strings.TrimSpace(line) == "" {
				errs = append(errs, fmt.Errorf("reasons.entries[%d][%d] is blank", i, j))
			}
		}
	}

	if len(c.Question.DeclineLabels) == 0 {
		errs = append(errs, errors.New("question.declineLabels cannot be empty"))
	}

	return errors.Join(errs...)
}

// ReasonCount 返回理由条数
func (c *Content) ReasonCount() int {
	return len(c.Reasons.Entries)
}

// LastReasonIndex 返回最后一条理由的索引
func (c *Content) LastReasonIndex() int {
	return len(c.Reasons.Entries) - 1
}

// Reason 返回第 index 条理由的所有短句
// 越界时返回 nil（控制器保证索引合法）
func (c *Content) Reason(index int) []string {
	if index < 0 || index >= len(c.Reasons.Entries) {
		return nil
	}
	return c.Reasons.Entries[index]
}

// DeclineLabel 按拒绝次数循环取标签
func (c *Content) DeclineLabel(noIndex int) string {
	n := len(c.Question.DeclineLabels)
	if n == 0 {
		return ""
	}
	i := noIndex % n
	if i < 0 {
		i += n
	}
	return c.Question.DeclineLabels[i]
}
