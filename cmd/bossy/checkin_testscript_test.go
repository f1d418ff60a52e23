package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/bossyapp/bossy/internal/testsupport"
)

func TestCheckinScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/checkin",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"goalid": testsupport.CmdGoalID,
			"taskid": testsupport.CmdTaskID,
			"today":  testsupport.CmdToday,
		},
	})
}
