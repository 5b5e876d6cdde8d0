package segclock

import "strconv"

// Mode is the state of the user interface.
type Mode int32

// Modes, in order. The Tick Handler shows the live time in every mode up to
// and including ShowingTime.
const (
	Unset Mode = iota // time never set; all digits blink
	ShowingTime
	EditingCurrentMinutes
	EditingCurrentHours
	EditingAlarmMinutes
	EditingAlarmHours
	modeCount
)

var modeNames = [modeCount]string{
	"Unset",
	"ShowingTime",
	"EditingCurrentMinutes",
	"EditingCurrentHours",
	"EditingAlarmMinutes",
	"EditingAlarmHours",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// Event is a button press. Buttons are polled in Event order.
type Event int

// Events.
const (
	Accept Event = iota
	Cancel
	SetTime
	SetAlarm
	Decrement
	Increment
	eventCount
)

var eventNames = [eventCount]string{
	"Accept",
	"Cancel",
	"SetTime",
	"SetAlarm",
	"Decrement",
	"Increment",
}

func (e Event) String() string {
	if e < 0 || e >= eventCount {
		return "Event(" + strconv.Itoa(int(e)) + ")"
	}
	return eventNames[e]
}

// blinkPeriod is in passes over the display: 250 passes of a 4 digit display
// refreshed every 1ms is one second.
const blinkPeriod = 250

// What each mode blinks.
var modeBlink = [modeCount]struct{ from, to, period int }{
	Unset:                 {0, 3, blinkPeriod},
	ShowingTime:           {0, 0, 0},
	EditingCurrentMinutes: {2, 3, blinkPeriod},
	EditingCurrentHours:   {0, 1, blinkPeriod},
	EditingAlarmMinutes:   {2, 3, blinkPeriod},
	EditingAlarmHours:     {0, 1, blinkPeriod},
}

// transitions[mode][event] handles event in mode. Nil entries ignore the
// event.
var transitions = [modeCount][eventCount]func(*Controller){
	Unset: {
		SetTime:  (*Controller).editTime,
		SetAlarm: (*Controller).editAlarm,
	},
	ShowingTime: {
		Accept:   (*Controller).enableAlarm,
		Cancel:   (*Controller).disableAlarm,
		SetTime:  (*Controller).editTime,
		SetAlarm: (*Controller).editAlarm,
	},
	EditingCurrentMinutes: {
		Accept:    func(c *Controller) { c.changeMode(EditingCurrentHours) },
		Cancel:    (*Controller).cancelEdit,
		SetTime:   (*Controller).editTime,
		SetAlarm:  (*Controller).editAlarm,
		Decrement: (*Controller).decrementMinutes,
		Increment: (*Controller).incrementMinutes,
	},
	EditingCurrentHours: {
		Accept:    (*Controller).commitTime,
		Cancel:    (*Controller).cancelEdit,
		SetTime:   (*Controller).editTime,
		SetAlarm:  (*Controller).editAlarm,
		Decrement: (*Controller).decrementHours,
		Increment: (*Controller).incrementHours,
	},
	EditingAlarmMinutes: {
		Accept:    func(c *Controller) { c.changeMode(EditingAlarmHours) },
		Cancel:    (*Controller).cancelEdit,
		SetTime:   (*Controller).editTime,
		SetAlarm:  (*Controller).editAlarm,
		Decrement: (*Controller).decrementMinutes,
		Increment: (*Controller).incrementMinutes,
	},
	EditingAlarmHours: {
		Accept:    (*Controller).commitAlarm,
		Cancel:    (*Controller).cancelEdit,
		SetTime:   (*Controller).editTime,
		SetAlarm:  (*Controller).editAlarm,
		Decrement: (*Controller).decrementHours,
		Increment: (*Controller).incrementHours,
	},
}
