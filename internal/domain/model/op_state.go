package model

type OpStatus string

const (
	OpIdle      OpStatus = "idle"
	OpPending   OpStatus = "pending"
	OpSucceeded OpStatus = "succeeded"
	OpFailed    OpStatus = "failed"
)

// 1操作ごとの状態。errはfailedのときだけ持つ。
// フィールドは非公開なので、コンストラクタ以外で組み合わせを作れない。
type OpState struct {
	status OpStatus
	err    error
}

func OpIdleState() OpState { return OpState{status: OpIdle} }
func OpPendingState() OpState { return OpState{status: OpPending} }
func OpSucceededState() OpState { return OpState{status: OpSucceeded} }
func OpFailedState(err error) OpState { return OpState{status: OpFailed, err: err} }

func (s OpState) Status() OpStatus {
	if s.status == "" {
		return OpIdle
	}
	return s.status
}

func (s OpState) Err() error { return s.err }

func (s OpState) Pending() bool { return s.status == OpPending }
