package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRulesPath 内置规则文件路径（相对于项目根目录）
const DefaultRulesPath = "data/game_rules.yaml"

// GameRules 游戏规则配置
// 定义关卡尺寸增长、经济数值、移动参数和各类计时
type GameRules struct {
	Level    LevelRules    `yaml:"level"`    // 关卡生成规则
	Economy  EconomyRules  `yaml:"economy"`  // 金币与斧头
	Movement MovementRules `yaml:"movement"` // 角色移动参数
	Timing   TimingRules   `yaml:"timing"`   // 计时（秒）
	Layers   LayerRules    `yaml:"layers"`   // 层高度
}

// LevelRules 关卡生成规则
type LevelRules struct {
	BaseWidth      int `yaml:"baseWidth"`      // 第 1 关宽度，默认 7
	Height         int `yaml:"height"`         // 固定高度，默认 15
	WidenEvery     int `yaml:"widenEvery"`     // 每多少关宽度 +1，默认 3
	MinAxes        int `yaml:"minAxes"`        // 斧头下限，默认 20
	AxeCellDivisor int `yaml:"axeCellDivisor"` // 斧头 = 格子数 / 该值，默认 4
	BaseCoins      int `yaml:"baseCoins"`      // 基础金币数，默认 3
	CoinsPerLevels int `yaml:"coinsPerLevels"` // 每多少关金币 +1，默认 2
}

// EconomyRules 经济数值
type EconomyRules struct {
	WinBonus          int `yaml:"winBonus"`          // 过关奖励金币，默认 5
	AxePrice          int `yaml:"axePrice"`          // 购买斧头价格，默认 5
	AxePack           int `yaml:"axePack"`           // 每次购买的斧头数，默认 3
	CharacterPrice    int `yaml:"characterPrice"`    // 角色价格，默认 20
	CharacterCount    int `yaml:"characterCount"`    // 可购买角色数量，默认 8
	StartingCharacter int `yaml:"startingCharacter"` // 默认解锁角色，默认 1
}

// MovementRules 角色移动参数（网格单位）
type MovementRules struct {
	MoveSpeed float64 `yaml:"moveSpeed"` // 水平速度（格/秒），默认 5
	JumpForce float64 `yaml:"jumpForce"` // 跳跃高度系数，默认 3
	Gravity   float64 `yaml:"gravity"`   // 重力加速度（负值），默认 -20
}

// TimingRules 计时参数（秒）
type TimingRules struct {
	DigDuration     float64 `yaml:"digDuration"`     // 挖掘动作时长，默认 0.3
	DigCooldown     float64 `yaml:"digCooldown"`     // 挖掘冷却，默认 0.5
	OutcomeDelay    float64 `yaml:"outcomeDelay"`    // 胜负判定后到通知 UI 的延迟，默认 0.5
	BreakDuration   float64 `yaml:"breakDuration"`   // 方块破碎动画时长，默认 0.3
	LoadingDuration float64 `yaml:"loadingDuration"` // 加载条填充时长，默认 2.0
	LoadingHold     float64 `yaml:"loadingHold"`     // 加载条满后停留时长，默认 0.3
}

// LayerRules 层高度
type LayerRules struct {
	LayerHeight float64 `yaml:"layerHeight"` // 顶层相对底层的高度，默认 1
}

// DefaultGameRules 返回默认游戏规则
func DefaultGameRules() *GameRules {
	rules := &GameRules{}
	applyRuleDefaults(rules)
	return rules
}

// LoadGameRules 从 YAML 文件加载游戏规则
//
// 参数：
//   - path: 规则文件路径
//
// 返回：
//   - *GameRules: 应用默认值后的规则
//   - error: 读取、解析或校验失败时返回错误
func LoadGameRules(path string) (*GameRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game rules file %s: %w", path, err)
	}

	rules, err := ParseGameRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game rules in %s: %w", path, err)
	}
	return rules, nil
}

// ParseGameRules 从 YAML 数据解析游戏规则
// 缺失字段使用默认值，解析后进行校验
func ParseGameRules(data []byte) (*GameRules, error) {
	var rules GameRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse game rules YAML: %w", err)
	}

	applyRuleDefaults(&rules)

	if err := validateGameRules(&rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// applyRuleDefaults 为缺失（零值）字段设置默认值
func applyRuleDefaults(rules *GameRules) {
	lv := &rules.Level
	if lv.BaseWidth == 0 {
		lv.BaseWidth = 7
	}
	if lv.Height == 0 {
		lv.Height = 15
	}
	if lv.WidenEvery == 0 {
		lv.WidenEvery = 3
	}
	if lv.MinAxes == 0 {
		lv.MinAxes = 20
	}
	if lv.AxeCellDivisor == 0 {
		lv.AxeCellDivisor = 4
	}
	if lv.BaseCoins == 0 {
		lv.BaseCoins = 3
	}
	if lv.CoinsPerLevels == 0 {
		lv.CoinsPerLevels = 2
	}

	eco := &rules.Economy
	if eco.WinBonus == 0 {
		eco.WinBonus = 5
	}
	if eco.AxePrice == 0 {
		eco.AxePrice = 5
	}
	if eco.AxePack == 0 {
		eco.AxePack = 3
	}
	if eco.CharacterPrice == 0 {
		eco.CharacterPrice = 20
	}
	if eco.CharacterCount == 0 {
		eco.CharacterCount = 8
	}
	if eco.StartingCharacter == 0 {
		eco.StartingCharacter = 1
	}

	mv := &rules.Movement
	if mv.MoveSpeed == 0 {
		mv.MoveSpeed = 5
	}
	if mv.JumpForce == 0 {
		mv.JumpForce = 3
	}
	if mv.Gravity == 0 {
		mv.Gravity = -20
	}

	tm := &rules.Timing
	if tm.DigDuration == 0 {
		tm.DigDuration = 0.3
	}
	if tm.DigCooldown == 0 {
		tm.DigCooldown = 0.5
	}
	if tm.OutcomeDelay == 0 {
		tm.OutcomeDelay = 0.5
	}
	if tm.BreakDuration == 0 {
		tm.BreakDuration = 0.3
	}
	if tm.LoadingDuration == 0 {
		tm.LoadingDuration = 2.0
	}
	if tm.LoadingHold == 0 {
		tm.LoadingHold = 0.3
	}

	if rules.Layers.LayerHeight == 0 {
		rules.Layers.LayerHeight = 1
	}
}

// MinBoardSize 关卡最小边长：最长积木 4 格加 1 格边距
// 更小的网格放不下完整的积木
const MinBoardSize = 5

// validateGameRules 校验规则数值的合法性
func validateGameRules(rules *GameRules) error {
	lv := rules.Level
	if lv.BaseWidth < MinBoardSize || lv.Height < MinBoardSize {
		return fmt.Errorf("level size must be at least %dx%d, got %dx%d", MinBoardSize, MinBoardSize, lv.BaseWidth, lv.Height)
	}
	if lv.WidenEvery < 1 || lv.AxeCellDivisor < 1 || lv.CoinsPerLevels < 1 {
		return fmt.Errorf("level divisors must be positive")
	}
	if lv.MinAxes < 1 {
		return fmt.Errorf("minAxes must be positive, got %d", lv.MinAxes)
	}

	eco := rules.Economy
	if eco.WinBonus < 0 || eco.AxePrice < 0 || eco.AxePack < 0 || eco.CharacterPrice < 0 {
		return fmt.Errorf("economy values must not be negative")
	}
	if eco.CharacterCount < 1 {
		return fmt.Errorf("characterCount must be positive, got %d", eco.CharacterCount)
	}
	if eco.StartingCharacter < 1 || eco.StartingCharacter > eco.CharacterCount {
		return fmt.Errorf("startingCharacter %d out of range [1, %d]", eco.StartingCharacter, eco.CharacterCount)
	}

	if rules.Movement.Gravity >= 0 {
		return fmt.Errorf("gravity must be negative, got %v", rules.Movement.Gravity)
	}

	tm := rules.Timing
	if tm.DigDuration < 0 || tm.DigCooldown < 0 || tm.OutcomeDelay < 0 ||
		tm.BreakDuration < 0 || tm.LoadingDuration < 0 || tm.LoadingHold < 0 {
		return fmt.Errorf("timings must not be negative")
	}
	return nil
}
