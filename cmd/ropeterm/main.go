package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"ropesim/rope"
	"ropesim/server"
)

// ropeterm 本地终端演示：方向键/WASD 移动，按住左键追踪指针，+/- 增减段数
func main() {
	var length int
	var logPath string
	var tick time.Duration
	flag.IntVar(&length, "length", 10, "number of rope segments")
	flag.StringVar(&logPath, "log", "ropeterm.log", "log file path")
	flag.DurationVar(&tick, "tick", 50*time.Millisecond, "pointer tracking tick interval")
	flag.Parse()

	cfg := server.DefaultConfig().Log
	cfg.File = logPath
	log, err := server.NewFileLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	chain, err := rope.New(length, 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a, err := newApp(screen, chain, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.screen.Fini()
	a.run(tick)
}

type app struct {
	screen  tcell.Screen
	chain   *rope.Chain
	tracker rope.Tracker
	log     *zap.SugaredLogger
}

func newApp(screen tcell.Screen, chain *rope.Chain, log *zap.SugaredLogger) (*app, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &app{screen: screen, chain: chain, log: log}, nil
}

func (a *app) dims() rope.Dims {
	w, h := a.screen.Size()
	return rope.Dims{Width: w, Height: h}
}

// 终端里一个字符即一个网格单元
const cellSize = 1

var arrowKeys = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
}

// handleEvent 返回 false 表示退出
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		key, ok := arrowKeys[ev.Key()]
		if !ok && ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case '+', '=':
				a.chain.AddNode()
				return true
			case '-':
				a.chain.RemoveNode()
				return true
			}
			key, ok = string(ev.Rune()), true
		}
		if !ok {
			return true
		}
		if d, bound := server.KeyDirection(key); bound {
			a.chain.Move(d)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p := rope.CanvasToGrid(x, y, a.dims(), cellSize)
		switch {
		case ev.Buttons()&tcell.Button1 != 0 && !a.tracker.Tracking():
			a.tracker.PointerDown(0, p)
			a.log.Debugf("tracking start: target=%v", p)
		case ev.Buttons()&tcell.Button1 != 0:
			a.tracker.PointerMove(0, p)
		case a.tracker.Tracking():
			a.tracker.PointerUp(0)
			a.log.Debugf("tracking stop: head=%v", a.chain.Head())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) draw() {
	a.screen.Clear()
	d := a.dims()
	segs := a.chain.Segments()
	// 尾部先画，头部覆盖在最上层
	for i := len(segs) - 1; i >= 0; i-- {
		x, y := rope.GridToCanvas(segs[i], d, cellSize)
		if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if i == 0 {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		}
		a.screen.SetContent(x, y, '█', nil, style)
	}
	status := fmt.Sprintf(" head %v  segments %d  tracking %v ", a.chain.Head(), a.chain.Len(), a.tracker.Tracking())
	for i, r := range status {
		a.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	a.screen.Show()
}

func (a *app) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
			a.draw()
		case <-ticker.C:
			if a.tracker.Step(a.chain) {
				a.draw()
			}
		}
	}
}
