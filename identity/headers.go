package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloudcodeid/utils"

	"github.com/bytedance/sonic"
)

// Style 模拟的客户端类型
type Style string

const (
	StyleGeminiCLI   Style = "gemini-cli"
	StyleAntigravity Style = "antigravity"
)

// ErrInvalidStyle 未知的客户端类型，没有可用的兜底请求头
var ErrInvalidStyle = errors.New("invalid header style")

// ParseStyle 解析客户端类型（忽略大小写和首尾空白）
func ParseStyle(value string) (Style, error) {
	switch style := Style(strings.ToLower(strings.TrimSpace(value))); style {
	case StyleGeminiCLI, StyleAntigravity:
		return style, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, value)
	}
}

const (
	HeaderUserAgent      = "User-Agent"
	HeaderGoogAPIClient  = "X-Goog-Api-Client"
	HeaderClientMetadata = "Client-Metadata"
)

// HeaderSet 身份相关请求头，空字段表示该类型不需要此请求头
type HeaderSet struct {
	UserAgent      string `json:"User-Agent"`
	GoogAPIClient  string `json:"X-Goog-Api-Client,omitempty"`
	ClientMetadata string `json:"Client-Metadata,omitempty"`
}

// Apply 把非空请求头写入 header
func (h HeaderSet) Apply(header http.Header) {
	if h.UserAgent != "" {
		header.Set(HeaderUserAgent, h.UserAgent)
	}
	if h.GoogAPIClient != "" {
		header.Set(HeaderGoogAPIClient, h.GoogAPIClient)
	}
	if h.ClientMetadata != "" {
		header.Set(HeaderClientMetadata, h.ClientMetadata)
	}
}

// GeminiCLIHeaders Code Assist (gemini-cli) 的固定请求头
var GeminiCLIHeaders = HeaderSet{
	UserAgent:      "google-api-nodejs-client/9.15.1",
	GoogAPIClient:  "gl-node/22.17.0",
	ClientMetadata: "ideType=IDE_UNSPECIFIED,platform=PLATFORM_UNSPECIFIED,pluginType=GEMINI",
}

// Platform 写入 User-Agent 和 Client-Metadata 的平台标识
// 只模拟 Windows 和 macOS，不产生 Linux
type Platform string

const (
	PlatformWindows Platform = "WINDOWS"
	PlatformMacOS   Platform = "MACOS"
)

const (
	antigravityPrefix = "antigravity/"
	antigravityIDE    = "ANTIGRAVITY"
	pluginTypeGemini  = "GEMINI"
)

var platforms = []Platform{PlatformWindows, PlatformMacOS}

// 每个平台可选的 os/arch 后缀
var platformArches = map[Platform][]string{
	PlatformWindows: {"windows/amd64"},
	PlatformMacOS:   {"darwin/arm64", "darwin/amd64"},
}

var googAPIClients = []string{
	"google-cloud-sdk vscode_cloudshelleditor/0.1",
	"google-cloud-sdk vscode/1.96.0",
	"google-cloud-sdk vscode/1.86.0",
	"google-cloud-sdk jetbrains/2024.3",
}

// ClientMetadata Client-Metadata 请求头的结构化内容
type ClientMetadata struct {
	IDEType    string   `json:"ideType"`
	Platform   Platform `json:"platform"`
	PluginType string   `json:"pluginType"`
}

// Encode 编码为 Client-Metadata 请求头使用的 JSON
func (m ClientMetadata) Encode() (string, error) {
	return sonic.MarshalString(m)
}

// Generator 请求头与指纹生成器，版本号在每次生成时从 VersionRegistry 读取
type Generator struct {
	versions *VersionRegistry
	intn     func(n int) int
}

// NewGenerator 创建生成器，versions 为 nil 时使用 DefaultVersions
func NewGenerator(versions *VersionRegistry) *Generator {
	if versions == nil {
		versions = DefaultVersions
	}
	return &Generator{
		versions: versions,
		intn: func(n int) int {
			return int(utils.RandomIntBetween(0, int64(n-1)))
		},
	}
}

// Versions 生成器使用的版本登记表
func (g *Generator) Versions() *VersionRegistry {
	return g.versions
}

// Headers 按类型生成身份请求头
// gemini-cli 返回固定值并忽略 model；antigravity 每次调用随机选择平台
func (g *Generator) Headers(style Style, model string) (HeaderSet, error) {
	switch style {
	case StyleGeminiCLI:
		return GeminiCLIHeaders, nil
	case StyleAntigravity:
		return g.antigravityHeaders()
	default:
		return HeaderSet{}, fmt.Errorf("%w: %q", ErrInvalidStyle, string(style))
	}
}

func (g *Generator) antigravityHeaders() (HeaderSet, error) {
	platform, arch := g.pickPlatform()

	metadata, err := ClientMetadata{
		IDEType:    antigravityIDE,
		Platform:   platform,
		PluginType: pluginTypeGemini,
	}.Encode()
	if err != nil {
		return HeaderSet{}, fmt.Errorf("编码Client-Metadata失败: %w", err)
	}

	return HeaderSet{
		UserAgent:      g.userAgent(arch),
		GoogAPIClient:  g.choose(googAPIClients),
		ClientMetadata: metadata,
	}, nil
}

// pickPlatform 只掷一次平台，User-Agent 后缀和元数据都由这一次结果派生
func (g *Generator) pickPlatform() (Platform, string) {
	platform := platforms[g.intn(len(platforms))]
	return platform, g.choose(platformArches[platform])
}

func (g *Generator) userAgent(arch string) string {
	return antigravityPrefix + g.versions.Current() + " " + arch
}

func (g *Generator) choose(options []string) string {
	return options[g.intn(len(options))]
}

var defaultGenerator = NewGenerator(DefaultVersions)

// GetHeaders 使用默认登记表生成请求头
func GetHeaders(style Style, model string) (HeaderSet, error) {
	return defaultGenerator.Headers(style, model)
}
