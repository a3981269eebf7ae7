package draft

// Observer is told when a round ends and when the whole draft ends. Notifications run
// synchronously inside SubmitPick after the session state has been updated.
type Observer interface {
	RoundComplete(round int)
	DraftComplete()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnRoundComplete func(round int)
	OnDraftComplete func()
}

func (f ObserverFuncs) RoundComplete(round int) {
	if f.OnRoundComplete != nil {
		f.OnRoundComplete(round)
	}
}

func (f ObserverFuncs) DraftComplete() {
	if f.OnDraftComplete != nil {
		f.OnDraftComplete()
	}
}
