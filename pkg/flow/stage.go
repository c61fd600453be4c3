package flow

// Stage 表示当前展示的阶段，同一时刻只有一个
type Stage int

const (
	StageWelcome  Stage = iota // 欢迎页
	StageGame                  // 接爱心小游戏
	StageReasons               // 逐条展示理由
	StageQuestion              // 提问
	StageYes                   // 答应后的庆祝
	StageFinal                 // 结束页
)

// Stages 按流程顺序列出所有阶段
var Stages = []Stage{StageWelcome, StageGame, StageReasons, StageQuestion, StageYes, StageFinal}

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageWelcome:
		return "welcome"
	case StageGame:
		return "game"
	case StageReasons:
		return "reasons"
	case StageQuestion:
		return "question"
	case StageYes:
		return "yes"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Event 触发阶段切换的事件
type Event int

const (
	EventNone              Event = iota
	EventStartGame               // welcome -> game
	EventGameComplete            // game -> reasons（由延迟任务触发）
	EventNextReason              // reasons -> reasons(i+1) / question
	EventFinishReasons           // reasons(最后一条) -> question
	EventAcceptProposal          // question -> yes
	EventDeclineProposal         // question -> question，拒绝次数+1
	EventContinueToDetails       // yes -> final
	EventRestart                 // final -> welcome
)

// Events 列出所有有效事件
var Events = []Event{
	EventStartGame,
	EventGameComplete,
	EventNextReason,
	EventFinishReasons,
	EventAcceptProposal,
	EventDeclineProposal,
	EventContinueToDetails,
	EventRestart,
}

// String returns the string representation of the event
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventStartGame:
		return "startGame"
	case EventGameComplete:
		return "gameComplete"
	case EventNextReason:
		return "nextReason"
	case EventFinishReasons:
		return "finishReasons"
	case EventAcceptProposal:
		return "acceptProposal"
	case EventDeclineProposal:
		return "declineProposal"
	case EventContinueToDetails:
		return "continueToDetails"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}
