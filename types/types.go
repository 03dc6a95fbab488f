// Package types defines the shared data structures for the scrapcore engine.
// This package contains only type definitions and the marker methods that
// close the Command and Action unions, no logic.
package types

import "time"

// Position is an integer grid coordinate. The world is unbounded.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Terrain classifies a grid tile.
type Terrain int

const (
	Floor Terrain = iota
	Wall
	Debris
	AcidPool
)

// POI is a point of interest placed on a tile.
type POI int

const (
	NoPOI POI = iota
	Cache
	Derelict
	NPC
	Pod
	Guardian
)

// Facing is the direction the squad leader looks at.
type Facing string

const (
	FacingUp    Facing = "UP"
	FacingDown  Facing = "DOWN"
	FacingLeft  Facing = "LEFT"
	FacingRight Facing = "RIGHT"
)

// Class is a bot or enemy chassis class; it drives type effectiveness.
type Class string

const (
	Scout   Class = "SCOUT"
	Assault Class = "ASSAULT"
	Tank    Class = "TANK"
	Tech    Class = "TECH"
)

// SkillCategory selects how a skill resolves in combat.
type SkillCategory string

const (
	CategoryAttack  SkillCategory = "ATTACK"
	CategorySupport SkillCategory = "SUPPORT"
	CategoryTech    SkillCategory = "TECH"
	CategoryDefense SkillCategory = "DEFENSE"
)

// DamageType is the element of an offensive skill.
type DamageType string

const (
	Kinetic  DamageType = "KINETIC"
	Thermal  DamageType = "THERMAL"
	Electric DamageType = "ELECTRIC"
	Untyped  DamageType = "NONE"
)

// DamageRoll selects a special base-damage rule for a skill.
type DamageRoll string

const (
	RollFixed  DamageRoll = ""       // base damage as listed
	RollSpread DamageRoll = "SPREAD" // base + uniform [0, spread)
	RollGamble DamageRoll = "GAMBLE" // base on success, 0 on failure
)

// Skill is a static catalog entry.
type Skill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    SkillCategory `json:"category"`
	DamageType  DamageType    `json:"damage_type"`
	MinLevel    int           `json:"min_level"`

	BaseDamage  int        `json:"base_damage"`
	Roll        DamageRoll `json:"roll,omitempty"`
	Spread      int        `json:"spread,omitempty"`       // RollSpread width
	SuccessRate float64    `json:"success_rate,omitempty"` // RollGamble odds
	Heal        int        `json:"heal,omitempty"`         // SUPPORT restore amount
	Shield      int        `json:"shield,omitempty"`       // DEFENSE base shield
}

// ModuleType distinguishes always-on modules from ones granting an action.
type ModuleType string

const (
	Passive ModuleType = "PASSIVE"
	Active  ModuleType = "ACTIVE"
)

// ModuleEffect identifies what an installed module does.
type ModuleEffect string

const (
	HullPlating ModuleEffect = "HULL_PLATING"
	DamageBoost ModuleEffect = "DMG_BOOST"
	ShieldGen   ModuleEffect = "SHIELD"
	Scanner     ModuleEffect = "SCANNER"
	AutoRepair  ModuleEffect = "AUTO_REPAIR"
)

// Module is an upgrade permanently attached to the bot that bought it.
type Module struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cost        int          `json:"cost"`
	Type        ModuleType   `json:"type"`
	Effect      ModuleEffect `json:"effect"`
	Value       int          `json:"value"`
}

// ItemEffect identifies what using an item does.
type ItemEffect string

const (
	ItemHeal   ItemEffect = "HEAL"
	ItemXP     ItemEffect = "XP"
	ItemRevive ItemEffect = "REVIVE"
	ItemQuest  ItemEffect = "QUEST"
)

// Item is an inventory stack.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Effect      ItemEffect `json:"effect"`
	Value       float64    `json:"value"`
	Count       int        `json:"count"`
}

// Bot is a player-controlled unit.
type Bot struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Class        Class    `json:"class"`
	HP           int      `json:"hp"`
	MaxHP        int      `json:"max_hp"` // base; hull plating is added on top
	Level        int      `json:"level"`
	XP           int      `json:"xp"`
	MaxXP        int      `json:"max_xp"`
	Modules      []Module `json:"modules"`
	ActiveSkills []string `json:"active_skills"`
	StoredSkills []string `json:"stored_skills"`
	Shield       int      `json:"shield"`
	IsDefeated   bool     `json:"is_defeated"`
	Personality  string   `json:"personality"`
}

// Enemy is an ephemeral combatant that lives for one encounter.
type Enemy struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Class   Class  `json:"class"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	XPValue int    `json:"xp_value"`
	IsBoss  bool   `json:"is_boss"`
}

// QuestStage is a step of the escape quest. Stages only move forward.
type QuestStage string

const (
	FindPod        QuestStage = "FIND_POD"
	GatherParts    QuestStage = "GATHER_PARTS"
	DefeatGuardian QuestStage = "DEFEAT_GUARDIAN"
	RepairPod      QuestStage = "REPAIR_POD"
	Completed      QuestStage = "COMPLETED"
)

// QuestState tracks quest progress.
type QuestState struct {
	Stage       QuestStage `json:"stage"`
	PartsFound  int        `json:"parts_found"`
	PartsNeeded int        `json:"parts_needed"`
	HasOmniTool bool       `json:"has_omni_tool"`
}

// PlayerStats accumulates play statistics for end-of-run scoring.
type PlayerStats struct {
	Steps            int            `json:"steps"`
	DamageDealt      int            `json:"damage_dealt"`
	DamageTaken      int            `json:"damage_taken"`
	HealingDone      int            `json:"healing_done"`
	ScrapCollected   int            `json:"scrap_collected"`
	BotsRecruited    int            `json:"bots_recruited"`
	BotsLost         int            `json:"bots_lost"`
	ModulesInstalled int            `json:"modules_installed"`
	QuestsCompleted  int            `json:"quests_completed"`
	SkillUsage       map[string]int `json:"skill_usage"`
}

// Player is the aggregate root of mutable game state.
type Player struct {
	Pos        Position        `json:"pos"`
	Facing     Facing          `json:"facing"`
	Scrap      int             `json:"scrap"`
	Team       []Bot           `json:"team"`
	ActiveSlot int             `json:"active_slot"`
	Reserves   []Bot           `json:"reserves"`
	Inventory  []Item          `json:"inventory"`
	Visited    map[string]bool `json:"visited_pois"`
	Quest      QuestState      `json:"quest"`
	Stats      PlayerStats     `json:"stats"`
}

// Mode is the top-level game mode.
type Mode string

const (
	Exploring Mode = "EXPLORING"
	InCombat  Mode = "COMBAT"
	GameOver  Mode = "GAME_OVER"
	Victory   Mode = "VICTORY"
)

// Severity tags a log entry for presentation.
type Severity string

const (
	SevInfo   Severity = "info"
	SevPlayer Severity = "player"
	SevEnemy  Severity = "enemy"
	SevGain   Severity = "gain"
	SevDanger Severity = "danger"
	SevWarn   Severity = "warn"
)

// LogEntry is one presentation event. Delay is the offset from the start of
// the command at which the presentation layer should reveal it.
type LogEntry struct {
	ID       int64         `json:"id"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Delay    time.Duration `json:"delay"`
}

// Event is a game event emitted by a resolver for single-pass dispatch.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of one command.
type Result struct {
	Handled bool       // false when the command was ignored as invalid
	Log     []LogEntry // presentation events in order
	Events  []Event    // game events that were dispatched
	Lock    time.Duration
	Score   int // final score, set when the run ends
}

// Command is the closed set of player commands.
type Command interface{ isCommand() }

type (
	Move            struct{ DX, DY int }
	NavigateTo      struct{ X, Y int }
	Interact        struct{}
	SwitchActiveBot struct{ Index int }
	// SwapReserve moves bots between team and reserves; -1 on either side
	// means "append to / take from the other list".
	SwapReserve struct{ TeamIndex, ReserveIndex int }
	EquipSkill  struct {
		SkillID  string
		ToActive bool
	}
	UseItem struct {
		ItemID   string
		BotIndex int
	}
	BuyModule    struct{ ModuleID string }
	Repair       struct{}
	CombatAction struct{ Action Action }
)

func (Move) isCommand()            {}
func (NavigateTo) isCommand()      {}
func (Interact) isCommand()        {}
func (SwitchActiveBot) isCommand() {}
func (SwapReserve) isCommand()     {}
func (EquipSkill) isCommand()      {}
func (UseItem) isCommand()         {}
func (BuyModule) isCommand()       {}
func (Repair) isCommand()          {}
func (CombatAction) isCommand()    {}

// Action is the closed set of in-combat actions.
type Action interface{ isAction() }

type (
	UseSkill     struct{ SkillID string }
	ShieldModule struct{}
	Recruit      struct{}
	SwitchTo     struct{ Slot int }
	CombatItem   struct{ ItemID string }
)

func (UseSkill) isAction()     {}
func (ShieldModule) isAction() {}
func (Recruit) isAction()      {}
func (SwitchTo) isAction()     {}
func (CombatItem) isAction()   {}
