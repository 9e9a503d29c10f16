package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pegshot/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var textColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func basicFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

// HUD shows score, targets left and the current phase along the bottom edge.
type HUD struct {
	ui    *ebitenui.UI
	label *widget.Text
	last  component.Game
	shown bool
}

func NewHUD() *HUD {
	label := widget.NewText(
		widget.TextOpts.Text("", basicFace(), textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
		})),
	)
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}))),
	)
	root.AddChild(label)
	return &HUD{ui: &ebitenui.UI{Container: root}, label: label}
}

func (h *HUD) Update(game component.Game) {
	if !h.shown || game != h.last {
		h.label.Label = hudText(game)
		h.last = game
		h.shown = true
	}
	h.ui.Update()
}

func hudText(game component.Game) string {
	if game.Won() {
		return fmt.Sprintf("score %d    all targets cleared", game.Score)
	}
	return fmt.Sprintf("score %d    targets %d    %s", game.Score, game.TargetsLeft, game.Phase)
}

// NewPauseUI builds a centered pause panel with a Resume button.
func NewPauseUI(width, height int, resume func()) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", basicFace(), textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", basicFace(), btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			resume()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
