package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// Field 日志字段
type Field struct {
	Key   string
	Value any
}

// Logger JSON 行日志器
type Logger struct {
	level        int64
	logger       *log.Logger
	logFile      *os.File
	enableCaller bool
	callerSkip   int
}

// 输出时由固定字段占用的键
var reservedKeys = map[string]bool{
	"timestamp": true,
	"level":     true,
	"file":      true,
	"func":      true,
	"message":   true,
}

var defaultLogger = New(os.Stdout)

// New 创建写入 w 的日志器，级别和调用者信息读取环境变量
func New(w io.Writer) *Logger {
	l := &Logger{
		level:      int64(INFO),
		callerSkip: 3,
	}

	debug := os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"
	if debug {
		l.level = int64(DEBUG)
	}
	if lvl, err := ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.level = int64(lvl)
	}

	// 调试级别默认带上调用位置
	switch os.Getenv("LOG_ENABLE_CALLER") {
	case "true", "1":
		l.enableCaller = true
	default:
		l.enableCaller = debug || Level(l.level) == DEBUG
	}
	if skip, err := strconv.Atoi(os.Getenv("LOG_CALLER_SKIP")); err == nil && skip > 0 {
		l.callerSkip = skip
	}

	writers := []io.Writer{w}
	if path := os.Getenv("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件 %s: %v\n", path, err)
		} else {
			l.logFile = file
			if os.Getenv("LOG_CONSOLE") == "false" {
				writers = []io.Writer{file}
			} else {
				writers = append(writers, file)
			}
		}
	}

	l.logger = log.New(io.MultiWriter(writers...), "", 0)
	return l
}

// ParseLevel 从字符串解析日志级别
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", s)
	}
}

func (l *Logger) enabled(level Level) bool {
	return atomic.LoadInt64(&l.level) <= int64(level)
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if !l.enabled(level) {
		return
	}

	var b strings.Builder
	b.WriteString(`{"timestamp":"`)
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteString(`","level":"`)
	b.WriteString(levelNames[level])
	b.WriteString(`"`)

	if l.enableCaller {
		l.writeCaller(&b)
	}

	b.WriteString(`,"message":`)
	if escaped, err := sonic.MarshalString(msg); err == nil {
		b.WriteString(escaped)
	} else {
		b.WriteString(`""`)
	}

	l.writeFields(&b, fields)
	b.WriteString(`}`)

	l.logger.Println(b.String())

	if level == FATAL {
		os.Exit(1)
	}
}

func (l *Logger) writeCaller(b *strings.Builder) {
	pc, file, line, ok := runtime.Caller(l.callerSkip)
	if !ok {
		return
	}
	if idx := strings.LastIndex(file, "/"); idx >= 0 {
		file = file[idx+1:]
	}
	b.WriteString(`,"file":"`)
	b.WriteString(file)
	b.WriteString(":")
	b.WriteString(strconv.Itoa(line))
	b.WriteString(`"`)

	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		if dot := strings.LastIndex(name, "."); dot >= 0 && dot < len(name)-1 {
			name = name[dot+1:]
		}
		b.WriteString(`,"func":"`)
		b.WriteString(name)
		b.WriteString(`"`)
	}
}

// writeFields 按键名排序输出，重复键以最后一次为准
func (l *Logger) writeFields(b *strings.Builder, fields []Field) {
	if len(fields) == 0 {
		return
	}

	values := make(map[string]any, len(fields))
	for _, f := range fields {
		if reservedKeys[f.Key] {
			continue
		}
		values[f.Key] = f.Value
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key, _ := sonic.MarshalString(k)
		b.WriteString(",")
		b.WriteString(key)
		b.WriteString(":")
		if data, err := sonic.Marshal(values[k]); err == nil {
			b.Write(data)
		} else {
			b.WriteString("null")
		}
	}
}

// SetLevel 设置默认日志器级别
func SetLevel(level Level) {
	atomic.StoreInt64(&defaultLogger.level, int64(level))
}

// SetOutput 替换默认日志器的输出，主要用于测试
func SetOutput(w io.Writer) {
	level := atomic.LoadInt64(&defaultLogger.level)
	defaultLogger = New(w)
	atomic.StoreInt64(&defaultLogger.level, level)
}

// Reinitialize 重新读取环境变量（.env 加载之后调用）
func Reinitialize() {
	if defaultLogger.logFile != nil {
		defaultLogger.logFile.Close()
	}
	defaultLogger = New(os.Stdout)
}

func Debug(msg string, fields ...Field) {
	defaultLogger.log(DEBUG, msg, fields)
}

func Info(msg string, fields ...Field) {
	defaultLogger.log(INFO, msg, fields)
}

func Warn(msg string, fields ...Field) {
	defaultLogger.log(WARN, msg, fields)
}

func Error(msg string, fields ...Field) {
	defaultLogger.log(ERROR, msg, fields)
}

func Fatal(msg string, fields ...Field) {
	defaultLogger.log(FATAL, msg, fields)
}

func String(key, val string) Field {
	return Field{Key: key, Value: val}
}

func Int(key string, val int) Field {
	return Field{Key: key, Value: val}
}

func Bool(key string, val bool) Field {
	return Field{Key: key, Value: val}
}

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Value: val.String()}
}

func Any(key string, val any) Field {
	return Field{Key: key, Value: val}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}
