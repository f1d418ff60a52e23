package boss

// messageSet holds every check-in message for one (personality, locale)
// pair. Done messages are a pool sampled at random; the missed messages
// are fixed per consecutive-miss bucket.
type messageSet struct {
	Done        [3]string
	MissedOnce  string
	MissedTwice string
	Escalation  string
}

// catalog is the closed message catalog. Every personality must have an
// entry for every locale; CatalogComplete verifies this at test time.
// Immutable after process start, safe for concurrent reads.
var catalog = map[Personality]map[Locale]messageSet{
	PersonalityExecution: {
		LocaleEN: {
			Done: [3]string{
				"Done. That's what execution looks like.",
				"Checked in. Keep the streak alive.",
				"Good. Consistency compounds.",
			},
			MissedOnce:  "You missed today. One miss is a slip. Don't let it become a pattern.",
			MissedTwice: "Two days in a row. This is how goals die. Get back on track tomorrow.",
			Escalation:  "You've missed multiple days. Either you're serious about this goal or you're not. Decide now.",
		},
		LocaleZhCN: {
			Done: [3]string{
				"完成了。这就是执行力。",
				"已打卡。保持连胜。",
				"很好。坚持会产生复利。",
			},
			MissedOnce:  "你今天没完成。一次失误是小事，别让它变成习惯。",
			MissedTwice: "连续两天没完成。目标就是这样失败的。明天必须回到正轨。",
			Escalation:  "你已经连续错过好几天了。要么认真对待这个目标，要么放弃。现在就做决定。",
		},
		LocaleZhTW: {
			Done: [3]string{
				"完成了。這就是執行力。",
				"已打卡。保持連勝。",
				"很好。堅持會產生複利。",
			},
			MissedOnce:  "你今天沒完成。一次失誤是小事，別讓它變成習慣。",
			MissedTwice: "連續兩天沒完成。目標就是這樣失敗的。明天必須回到正軌。",
			Escalation:  "你已經連續錯過好幾天了。要麼認真對待這個目標，要麼放棄。現在就做決定。",
		},
		LocaleZhHK: {
			Done: [3]string{
				"完成咗。呢個就係執行力。",
				"已打卡。保持連勝。",
				"好。堅持先會有成果。",
			},
			MissedOnce:  "你今日冇完成。一次失手唔緊要，但唔好變成習慣。",
			MissedTwice: "連續兩日冇完成。目標就係咁樣失敗。聽日一定要返回正軌。",
			Escalation:  "你已經連續錯過好幾日。你係認真定係唔認真？而家就要決定。",
		},
	},
	PersonalitySupportive: {
		LocaleEN: {
			Done: [3]string{
				"Wonderful work today! Every check-in counts.",
				"You showed up, and that matters. Great job!",
				"Another day done. Be proud of yourself!",
			},
			MissedOnce:  "You missed today, and that's okay. Tomorrow is a fresh start.",
			MissedTwice: "Two misses in a row. Don't be hard on yourself, just aim for tomorrow.",
			Escalation:  "It's been a few days. Remember why you started. I believe you can get back to it.",
		},
		LocaleZhCN: {
			Done: [3]string{
				"今天做得太棒了！每一次打卡都算数。",
				"你坚持了，这很重要。真棒！",
				"又完成了一天，为自己骄傲吧！",
			},
			MissedOnce:  "今天没完成也没关系，明天又是新的开始。",
			MissedTwice: "连续两天没完成。别苛责自己，明天再试试看。",
			Escalation:  "已经好几天了。记得你当初为什么开始。我相信你能重新出发。",
		},
		LocaleZhTW: {
			Done: [3]string{
				"今天做得太棒了！每一次打卡都算數。",
				"你堅持了，這很重要。真棒！",
				"又完成了一天，為自己驕傲吧！",
			},
			MissedOnce:  "今天沒完成也沒關係，明天又是新的開始。",
			MissedTwice: "連續兩天沒完成。別苛責自己，明天再試試看。",
			Escalation:  "已經好幾天了。記得你當初為什麼開始。我相信你能重新出發。",
		},
		LocaleZhHK: {
			Done: [3]string{
				"今日做得好好！每次打卡都有意義。",
				"你堅持到，好緊要。叻！",
				"又完成一日，為自己自豪啦！",
			},
			MissedOnce:  "今日冇完成都唔緊要，聽日再嚟過。",
			MissedTwice: "連續兩日冇完成。唔好怪自己，聽日再試。",
			Escalation:  "已經幾日喇。記住你點解開始。我相信你做得返。",
		},
	},
	PersonalityMentor: {
		LocaleEN: {
			Done: [3]string{
				"Well done. Notice what made today work and repeat it.",
				"Progress recorded. Small steps build lasting habits.",
				"Good session. Reflect on it briefly before tomorrow.",
			},
			MissedOnce:  "A missed day is information, not failure. What got in the way?",
			MissedTwice: "Two missed days suggests a pattern forming. Adjust your plan before it settles.",
			Escalation:  "Three or more missed days means the plan no longer fits your life. Rework it tonight and start smaller tomorrow.",
		},
		LocaleZhCN: {
			Done: [3]string{
				"做得好。想想今天为什么顺利，然后复制它。",
				"进度已记录。小步前进才能养成持久的习惯。",
				"不错的一天。睡前简单回顾一下吧。",
			},
			MissedOnce:  "错过一天是信息，不是失败。是什么挡住了你？",
			MissedTwice: "连续两天没完成，说明模式正在形成。趁早调整你的计划。",
			Escalation:  "连续三天以上没完成，说明计划已经不适合你的生活。今晚重新规划，明天从更小的目标开始。",
		},
		LocaleZhTW: {
			Done: [3]string{
				"做得好。想想今天為什麼順利，然後複製它。",
				"進度已記錄。小步前進才能養成持久的習慣。",
				"不錯的一天。睡前簡單回顧一下吧。",
			},
			MissedOnce:  "錯過一天是資訊，不是失敗。是什麼擋住了你？",
			MissedTwice: "連續兩天沒完成，說明模式正在形成。趁早調整你的計畫。",
			Escalation:  "連續三天以上沒完成，說明計畫已經不適合你的生活。今晚重新規劃，明天從更小的目標開始。",
		},
		LocaleZhHK: {
			Done: [3]string{
				"做得好。諗下今日點解順利，然後照做。",
				"進度記低咗。細步慢行先養成長久習慣。",
				"唔錯嘅一日。瞓前簡單回顧下。",
			},
			MissedOnce:  "錯過一日係資訊，唔係失敗。係咩阻住咗你？",
			MissedTwice: "連續兩日冇完成，開始成形喇。早啲調整你嘅計劃。",
			Escalation:  "連續三日以上冇完成，即係個計劃已經唔適合你。今晚重新計劃，聽日由細目標開始。",
		},
	},
	PersonalityDrillSergeant: {
		LocaleEN: {
			Done: [3]string{
				"Outstanding! That's how it's done, soldier!",
				"Checked in and squared away. Again tomorrow!",
				"Mission complete. No excuses needed today!",
			},
			MissedOnce:  "You missed a day! Unacceptable. Make up for it tomorrow, no excuses!",
			MissedTwice: "Two days AWOL! Drop the excuses and get moving!",
			Escalation:  "Three days or more of nothing! On your feet! You finish what you start, starting NOW!",
		},
		LocaleZhCN: {
			Done: [3]string{
				"漂亮！就该这么干，士兵！",
				"打卡完毕，干净利落。明天继续！",
				"任务完成。今天不需要任何借口！",
			},
			MissedOnce:  "你错过了一天！不可接受。明天补回来，没有借口！",
			MissedTwice: "擅离职守两天！收起借口，立刻行动！",
			Escalation:  "三天以上什么都没做！站起来！开始了就要做完，现在就动！",
		},
		LocaleZhTW: {
			Done: [3]string{
				"漂亮！就該這麼幹，士兵！",
				"打卡完畢，乾淨俐落。明天繼續！",
				"任務完成。今天不需要任何藉口！",
			},
			MissedOnce:  "你錯過了一天！不可接受。明天補回來，沒有藉口！",
			MissedTwice: "擅離職守兩天！收起藉口，立刻行動！",
			Escalation:  "三天以上什麼都沒做！站起來！開始了就要做完，現在就動！",
		},
		LocaleZhHK: {
			Done: [3]string{
				"正！就係要咁做，士兵！",
				"打卡完成，企理。聽日再嚟！",
				"任務完成。今日唔使搵藉口！",
			},
			MissedOnce:  "你錯過咗一日！唔接受。聽日補返，冇藉口！",
			MissedTwice: "走咗兩日！收起藉口，即刻行動！",
			Escalation:  "三日以上乜都冇做！企起身！開始咗就要做完，而家就做！",
		},
	},
}

// DonePool returns the fixed done-message pool for a personality and
// locale. The returned slice is a copy.
func DonePool(personality Personality, locale Locale) ([]string, error) {
	set, err := lookupMessages(personality, locale)
	if err != nil {
		return nil, err
	}
	pool := make([]string, len(set.Done))
	copy(pool, set.Done[:])
	return pool, nil
}

func lookupMessages(personality Personality, locale Locale) (messageSet, error) {
	if !personality.IsValid() {
		return messageSet{}, formatInvalidPersonalityError(personality)
	}
	if !locale.IsValid() {
		return messageSet{}, formatInvalidLocaleError(locale)
	}
	byLocale, ok := catalog[personality]
	if !ok {
		return messageSet{}, formatInvalidPersonalityError(personality)
	}
	set, ok := byLocale[locale]
	if !ok {
		return messageSet{}, formatInvalidLocaleError(locale)
	}
	return set, nil
}
