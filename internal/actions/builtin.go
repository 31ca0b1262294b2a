package actions

import (
	"fmt"

	"cosmicanimator/internal/stage"
)

// Built-in action builders. Each returns the main-phase animations (the
// thing appearing or moving), optional effect-phase embellishments, and a
// settle wait. Group names let later actions in the same step target what
// an earlier one created.

func anim(name, target string, args map[string]any) stage.Animation {
	return stage.Animation{Name: name, Target: target, Args: args}
}

func renderTitle(ctx *Context, args map[string]any) (Result, error) {
	text, err := requireString(args, "text")
	if err != nil {
		return Result{}, err
	}
	group := fmt.Sprintf("title_%d", ctx.StepIndex)
	res := Result{
		Group:    group,
		Main:     []stage.Animation{anim("write_text", group, map[string]any{"text": text})},
		PostWait: floatArg(args, "post_wait", 0.2),
	}
	if subtitle, ok := args["subtitle"].(string); ok && subtitle != "" {
		res.Effects = append(res.Effects, anim("fade_in", group+"_sub", map[string]any{"text": subtitle}))
	}
	return res, nil
}

func layoutBoxes(ctx *Context, args map[string]any) (Result, error) {
	labels := stringSlice(args, "labels")
	if len(labels) == 0 {
		return Result{}, fmt.Errorf("layout_boxes: 'labels' must be a non-empty list")
	}
	group := fmt.Sprintf("boxes_%d", ctx.StepIndex)
	res := Result{Group: group, PostWait: floatArg(args, "post_wait", 0.15)}
	for i, label := range labels {
		res.Main = append(res.Main, anim("draw_box", fmt.Sprintf("%s_%d", group, i), map[string]any{
			"label":   label,
			"row":     floatArg(args, "row", 0),
			"spacing": floatArg(args, "spacing", 1.5),
		}))
	}
	return res, nil
}

func layoutBranch(ctx *Context, args map[string]any) (Result, error) {
	root, err := requireString(args, "root")
	if err != nil {
		return Result{}, err
	}
	children := stringSlice(args, "children")
	if len(children) == 0 {
		return Result{}, fmt.Errorf("layout_branch: 'children' must be a non-empty list")
	}
	group := fmt.Sprintf("branch_%d", ctx.StepIndex)
	res := Result{Group: group, PostWait: floatArg(args, "post_wait", 0.15)}
	res.Main = append(res.Main, anim("draw_box", group+"_root", map[string]any{"label": root}))
	for i, child := range children {
		target := fmt.Sprintf("%s_%d", group, i)
		res.Main = append(res.Main, anim("draw_box", target, map[string]any{"label": child}))
		res.Effects = append(res.Effects, anim("draw_edge", target, map[string]any{"from": group + "_root"}))
	}
	return res, nil
}

func fadeIn(ctx *Context, args map[string]any) (Result, error) {
	target := stringArg(args, "target", ctx.PrevGroup)
	if target == "" {
		return Result{}, fmt.Errorf("fade_in: no 'target' and no preceding group to attach to")
	}
	return Result{
		Group: target,
		Main:  []stage.Animation{anim("fade_in", target, map[string]any{"shift": floatArg(args, "shift", 0)})},
	}, nil
}

func fadeOut(ctx *Context, args map[string]any) (Result, error) {
	target := stringArg(args, "target", ctx.PrevGroup)
	if target == "" {
		return Result{}, fmt.Errorf("fade_out: no 'target' and no preceding group to attach to")
	}
	return Result{
		Group: target,
		Main:  []stage.Animation{anim("fade_out", target, map[string]any{"shift": floatArg(args, "shift", 0)})},
	}, nil
}

func pulse(ctx *Context, args map[string]any) (Result, error) {
	target := stringArg(args, "target", ctx.PrevGroup)
	if target == "" {
		return Result{}, fmt.Errorf("pulse: no 'target' and no preceding group to attach to")
	}
	return Result{
		Group:   target,
		Effects: []stage.Animation{anim("pulse", target, map[string]any{"scale": floatArg(args, "scale", 1.15)})},
	}, nil
}

func connectArrow(ctx *Context, args map[string]any) (Result, error) {
	from, err := requireString(args, "from")
	if err != nil {
		return Result{}, err
	}
	to, err := requireString(args, "to")
	if err != nil {
		return Result{}, err
	}
	group := fmt.Sprintf("arrow_%d", ctx.StepIndex)
	return Result{
		Group: group,
		Main: []stage.Animation{anim("grow_arrow", group, map[string]any{
			"from": from,
			"to":   to,
		})},
		PostWait: floatArg(args, "post_wait", 0.1),
	}, nil
}
