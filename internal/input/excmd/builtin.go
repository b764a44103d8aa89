package excmd

import "strings"

func builtins() map[string]Handler {
	return map[string]Handler{
		"echo":  echo,
		"write": write,
		"w":     write,
		"quit":  quit,
		"q":     quit,
		"wq":    writeQuit("wq"),
		"x":     writeQuit("x"),
		"exit":  writeQuit("x"),
		"edit":  edit,
		"e":     edit,
	}
}

// forced builds the status and message pair for a command kind.
func forced(kind string, force bool) Outcome {
	if force {
		return Outcome{Status: "command_" + kind + "_force", Message: kind + "!"}
	}
	return Outcome{Status: "command_" + kind, Message: kind}
}

func echo(env Env, cmd Command) Outcome {
	if cmd.Force {
		return unknown(env, cmd)
	}
	msg := strings.Join(cmd.Args, " ")
	env.emit(TopicEcho, EchoPayload{Message: msg})
	return Outcome{Status: StatusEcho, Message: msg}
}

func write(env Env, cmd Command) Outcome {
	emitWrite(env, cmd)
	return forced("write", cmd.Force)
}

func quit(env Env, cmd Command) Outcome {
	env.emit(TopicQuit, QuitPayload{Force: cmd.Force})
	return forced("quit", cmd.Force)
}

func writeQuit(kind string) Handler {
	return func(env Env, cmd Command) Outcome {
		emitWrite(env, cmd)
		env.emit(TopicQuit, QuitPayload{Force: cmd.Force})
		return forced(kind, cmd.Force)
	}
}

func edit(env Env, cmd Command) Outcome {
	env.emit(TopicEdit, WritePayload{
		Force:    cmd.Force,
		Args:     append([]string(nil), cmd.Args...),
		Snapshot: env.Snapshot(),
	})
	return forced("edit", cmd.Force)
}

func emitWrite(env Env, cmd Command) {
	env.emit(TopicWrite, WritePayload{
		Force:    cmd.Force,
		Args:     append([]string(nil), cmd.Args...),
		Snapshot: env.Snapshot(),
	})
}
