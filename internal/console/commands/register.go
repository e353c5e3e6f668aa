package commands

// RegisterAll registers the full console command set on registry.
func RegisterAll(registry *Registry, env *Env) {
	registry.Register("quit", NewExitCommand(env))
	registry.Register("help", NewHelpCommand(env))
	registry.Register("status", NewStatusCommand(env))
	registry.Register("history", NewHistoryCommand(env))
	registry.Register("last", NewLastCommand(env))

	registry.Register("action", NewActionCommand(env))
	registry.Register("idle", NewQueueCommand(env, "idle", ActionIdle, "Queue an idle action"))
	registry.Register("grind", NewQueueCommand(env, "grind", ActionEnterGrind, "Queue entering grind mode"))
	registry.Register("stopgrind", NewQueueCommand(env, "stopgrind", ActionStopGrind, "Queue leaving grind mode", "ungrind", "follow"))
	registry.Register("attack", NewQueueCommand(env, "attack", ActionAttackPull, "Queue an attack pull (legacy)").Legacy())
	registry.Register("stay", NewQueueCommand(env, "stay", ActionStay, "Queue holding position"))
	registry.Register("unstay", NewQueueCommand(env, "unstay", ActionUnstay, "Queue releasing a held position"))
	registry.Register("talk", NewTalkCommand(env))
	registry.Register("move", NewMoveCommand(env))

	registry.Register("long", NewLongCommand(env))
	registry.Register("short", NewShortCommand(env))

	registry.Register("band", NewBandCommand(env))
	registry.Register("nav", NewNavCommand(env))
	registry.Register("epoch", NewEpochCommand(env))
	registry.Register("quest", NewQuestCommand(env))

	registry.Register("load", NewLoadCommand(env))
	registry.Register("clear", NewClearCommand(env))
}
