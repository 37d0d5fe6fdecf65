// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a golf trip platform where:
//   - Users join Trips (a buddies trip is the top-level container)
//   - Trips contain Rounds played at Courses
//   - Rounds track Scores per player per hole
//   - Bets (match play, Nassau, skins, wolf, team points) attach to rounds
//
// Only raw gross scores are the source of truth. Everything a bet displays —
// leads, presses, pots, per-player money — is recomputed from the full score
// history by the scoring package; the few cached columns on bet rows (status,
// lead, through-hole) are materialized snapshots that are safe to overwrite at
// any time.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a UserRole
// where a TripStatus is expected — while keeping the values human-readable in the database.

// UserRole represents a user's global permission level across the entire platform.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // Full access: manage users, trips, everything
	UserRoleManager UserRole = "manager" // Can create and manage trips
	UserRoleUser    UserRole = "user"    // Regular player: can join trips and record scores
)

// TripStatus tracks the lifecycle of a trip.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// TripPlayerRole controls what a user can do within a specific trip.
// This is separate from UserRole (which is a global platform role).
type TripPlayerRole string

const (
	TripPlayerRoleOrganizer TripPlayerRole = "organizer" // Can manage this trip
	TripPlayerRolePlayer    TripPlayerRole = "player"    // Participant only
)

// TripPlayerStatus tracks a player's participation state in a trip.
type TripPlayerStatus string

const (
	TripPlayerStatusInvited    TripPlayerStatus = "invited"
	TripPlayerStatusRegistered TripPlayerStatus = "registered"
	TripPlayerStatusWithdrawn  TripPlayerStatus = "withdrawn"
)

// RoundStatus tracks the lifecycle of a single round within a trip.
type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// BetFormat tags which wagering format a bet row represents. The formats share
// no behavior beyond "compute my state from scores", so the Bet row is a tagged
// union: the format decides which detail record (MatchBet, NassauBet, ...) holds
// the configuration.
type BetFormat string

const (
	BetFormatMatchPlay  BetFormat = "match_play"
	BetFormatNassau     BetFormat = "nassau"
	BetFormatSkins      BetFormat = "skins"
	BetFormatWolf       BetFormat = "wolf"
	BetFormatPointsHiLo BetFormat = "points_hi_lo"
	BetFormatStableford BetFormat = "stableford"
)

// TeeGender indicates which gender a set of tees is rated for.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: User -> users, Trip -> trips, etc.

// User represents a registered person in the system.
// Users are created automatically the first time a Clerk-authenticated user hits the API.
// The ClerkID links our internal record to Clerk's identity system.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClerkID     *string   `gorm:"uniqueIndex:idx_users_clerk_id"` // Clerk's user ID; pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	AvatarURL   *string
	Role        UserRole `gorm:"type:user_role;not null;default:'user'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Trip is the top-level container: a multi-day golf trip with a roster of
// players, a series of rounds, and money games attached to each round.
// Who belongs to a trip is tracked via TripPlayer; who can manage it is
// controlled by TripPlayer.Role = "organizer".
type Trip struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"not null"`
	Description *string    // Optional long-form description; pointer = nullable
	Status      TripStatus `gorm:"type:trip_status;not null;default:'upcoming'"`
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Creator     User      `gorm:"foreignKey:CreatedBy"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Players     []TripPlayer `gorm:"foreignKey:TripID"`
	Rounds      []Round      `gorm:"foreignKey:TripID"`
}

// TripPlayer links a User to a Trip. The unique index (idx_trip_user) ensures
// a user can only be on a trip's roster once.
type TripPlayer struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_trip_user"`
	Trip      Trip             `gorm:"foreignKey:TripID"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_trip_user"`
	User      User             `gorm:"foreignKey:UserID"`
	Role      TripPlayerRole   `gorm:"type:trip_player_role;not null;default:'player'"`
	Status    TripPlayerStatus `gorm:"type:trip_player_status;not null;default:'registered'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Round represents a single round of play within a Trip.
type Round struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripID        uuid.UUID   `gorm:"type:uuid;not null"`
	Trip          Trip        `gorm:"foreignKey:TripID"`
	CourseID      uuid.UUID   `gorm:"type:uuid;not null"`
	Course        Course      `gorm:"foreignKey:CourseID"`
	DefaultTeeID  uuid.UUID   `gorm:"type:uuid;not null"` // The tee set most players use; individuals can override in RoundPlayer
	DefaultTee    Tee         `gorm:"foreignKey:DefaultTeeID"`
	RoundNumber   int         `gorm:"not null;default:1"`
	ScheduledDate time.Time   `gorm:"not null"`
	Status        RoundStatus `gorm:"type:round_status;not null;default:'scheduled'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Players       []RoundPlayer `gorm:"foreignKey:RoundID"`
	Bets          []Bet         `gorm:"foreignKey:RoundID"`
}

// RoundPlayer links a trip member to a specific Round and stores their
// handicap info for it. PlayingHandicap is the handicap the engine actually
// uses — it is derived from HandicapIndex and the tee's rating/slope/par when
// the player is added, and may be negative for a plus player.
type RoundPlayer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_round_user"`
	Round           Round      `gorm:"foreignKey:RoundID"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_round_user"`
	User            User       `gorm:"foreignKey:UserID"`
	TeeID           *uuid.UUID `gorm:"type:uuid"` // Optional tee override; if nil, the round's DefaultTee is used
	Tee             *Tee       `gorm:"foreignKey:TeeID"`
	HandicapIndex   *float64   `gorm:"type:decimal(4,1)"` // WHS handicap index at time of round (e.g., 14.2)
	PlayingHandicap *int       // Course handicap actually played off for this round; nullable until set
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Score records the gross strokes a player took on a single hole during a
// round. Net scores are never stored — they are derived on every read from the
// player's playing handicap and the hole's stroke index, so editing a handicap
// can never leave a stale net behind.
type Score struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_hole"` // Composite unique: one score per player per hole
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	HoleNumber    int         `gorm:"not null;uniqueIndex:idx_round_player_hole"` // 1–18
	GrossScore    int         `gorm:"not null"`
	EnteredBy     uuid.UUID   `gorm:"type:uuid;not null"` // Which user entered this score
	Enterer       User        `gorm:"foreignKey:EnteredBy"`
	EnteredAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

// Bet is the tagged-union root of every money game attached to a round. The
// Format column decides which of the detail records below holds the
// configuration; exactly one of them exists per bet.
type Bet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID   uuid.UUID `gorm:"type:uuid;not null"`
	Round     Round     `gorm:"foreignKey:RoundID"`
	Format    BetFormat `gorm:"type:bet_format;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Match      *MatchBet      `gorm:"foreignKey:BetID"`
	Nassau     *NassauBet     `gorm:"foreignKey:BetID"`
	Skins      *SkinsBet      `gorm:"foreignKey:BetID"`
	Wolf       *WolfBet       `gorm:"foreignKey:BetID"`
	TeamFormat *TeamFormatBet `gorm:"foreignKey:BetID"`
}

// MatchBet configures a 1v1 or 2v2 match-play bet. The Status/Lead/ThroughHole
// columns are a materialized snapshot of the computed state, refreshed by the
// sync service whenever a score lands; the snapshot is always safe to
// recompute and overwrite.
type MatchBet struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BetID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	MatchType      string     `gorm:"not null"` // "1v1" or "2v2"
	StakePerHole   float64    `gorm:"not null"`
	TeamAPlayer1ID uuid.UUID  `gorm:"type:uuid;not null"`
	TeamAPlayer2ID *uuid.UUID `gorm:"type:uuid"` // nil for 1v1
	TeamBPlayer1ID uuid.UUID  `gorm:"type:uuid;not null"`
	TeamBPlayer2ID *uuid.UUID `gorm:"type:uuid"`
	Presses        []Press    `gorm:"foreignKey:MatchBetID"`

	// Cached snapshot, owned by the sync service.
	Status      string `gorm:"not null;default:''"`
	Lead        int    `gorm:"not null;default:0"`
	ThroughHole int    `gorm:"not null;default:0"`
	Closed      bool   `gorm:"not null;default:false"`
}

// Press is a sub-bet started mid-match. Its stake is frozen at creation and is
// never touched by later stake changes on the parent match. The cached columns
// mirror MatchBet's and are refreshed in the same transaction as the parent.
type Press struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchBetID   uuid.UUID `gorm:"type:uuid;not null"`
	StartingHole int       `gorm:"not null"`
	EndingHole   int       `gorm:"not null;default:18"`
	Stake        float64   `gorm:"not null"`
	CreatedAt    time.Time

	Status string `gorm:"not null;default:''"`
	Lead   int    `gorm:"not null;default:0"`
	Closed bool   `gorm:"not null;default:false"`
}

// NassauBet configures a three-way Nassau. HighBallTiebreak is stored for
// round-tripping bet configurations but does not currently alter scoring.
type NassauBet struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BetID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	StakePerMan        float64    `gorm:"not null"`
	AutoPress          bool       `gorm:"not null;default:false"`
	AutoPressThreshold int        `gorm:"not null;default:2"`
	HighBallTiebreak   bool       `gorm:"not null;default:false"`
	TeamAPlayer1ID     uuid.UUID  `gorm:"type:uuid;not null"`
	TeamAPlayer2ID     *uuid.UUID `gorm:"type:uuid"`
	TeamBPlayer1ID     uuid.UUID  `gorm:"type:uuid;not null"`
	TeamBPlayer2ID     *uuid.UUID `gorm:"type:uuid"`
}

// SkinsBet configures a skins game; the field is the list of SkinsPlayer rows.
type SkinsBet struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BetID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	SkinValue float64       `gorm:"not null"`
	Carryover bool          `gorm:"not null;default:true"`
	Players   []SkinsPlayer `gorm:"foreignKey:SkinsBetID"`
}

// SkinsPlayer places a user into a skins field.
type SkinsPlayer struct {
	SkinsBetID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	User       User      `gorm:"foreignKey:UserID"`
}

// WolfBet configures a wolf game. The tee order rows fix the base rotation;
// the wolf for any hole is derived from it by modulo arithmetic, never stored.
type WolfBet struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BetID              uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	StakePerHole       float64           `gorm:"not null"`
	LoneWolfMultiplier float64           `gorm:"not null;default:2"`
	TeeOrder           []WolfPlayer      `gorm:"foreignKey:WolfBetID"`
	Decisions          []WolfBetDecision `gorm:"foreignKey:WolfBetID"`
}

// WolfPlayer fixes one slot of a wolf game's base tee order (positions 1–4).
type WolfPlayer struct {
	WolfBetID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeePosition int       `gorm:"primaryKey"` // 1–4
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	User        User      `gorm:"foreignKey:UserID"`
}

// WolfBetDecision records the wolf's team split for one hole: a partner pick
// or a lone-wolf call. The unique index ensures one decision per hole.
type WolfBetDecision struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WolfBetID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_wolf_bet_hole"`
	HoleNumber int        `gorm:"not null;uniqueIndex:idx_wolf_bet_hole"`
	PartnerID  *uuid.UUID `gorm:"type:uuid"` // nil when lone wolf
	IsLoneWolf bool       `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

// TeamFormatBet configures a fixed 2v2 point format (Points Hi/Lo or
// Stableford — the parent Bet's Format column says which).
type TeamFormatBet struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BetID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Team1Player1ID uuid.UUID `gorm:"type:uuid;not null"`
	Team1Player2ID uuid.UUID `gorm:"type:uuid;not null"`
	Team2Player1ID uuid.UUID `gorm:"type:uuid;not null"`
	Team2Player2ID uuid.UUID `gorm:"type:uuid;not null"`
}

// Course represents a golf course where rounds are played.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	HoleCount int       `gorm:"not null;default:18"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tees      []Tee `gorm:"foreignKey:CourseID"` // One-to-many: a course has many sets of tees (different distances/ratings)
}

// Tee represents one set of tee boxes on a course (e.g., "Blue", "White", "Red").
// Each tee set has its own course rating, slope, and par — used for handicap calculations.
type Tee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Name         string    `gorm:"not null"`
	Gender       TeeGender `gorm:"type:tee_gender;not null"`
	CourseRating float64   `gorm:"type:decimal(4,1);not null"` // USGA course rating (e.g., 72.4)
	SlopeRating  int       `gorm:"not null"`                   // USGA slope rating (55–155)
	Par          int       `gorm:"not null"`
	Holes        []Hole    `gorm:"foreignKey:TeeID"`
}

// Hole stores per-hole details for a specific set of tees.
// Par and StrokeIndex can vary between tee sets on the same course.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeeID       uuid.UUID `gorm:"type:uuid;not null"`
	Tee         Tee       `gorm:"foreignKey:TeeID"`
	HoleNumber  int       `gorm:"not null"` // 1–18
	Par         int       `gorm:"not null"`
	StrokeIndex int       `gorm:"not null"` // Handicap allocation: 1 = hardest (gets first handicap stroke), 18 = easiest
	Yardage     *int      // Optional because some courses don't publish yardages
}
