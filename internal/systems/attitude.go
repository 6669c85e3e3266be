package systems

import "github.com/asgard/interceptsim/internal/world"

// RunAttitude filters each propelled entity's commanded pitch/yaw rates
// through its first-order low-pass filters and integrates theta/psi via AB2
// using the previous filtered rate stored on the component.
// Ballistic missiles receive zero commanded rates by default, but still run
// through the filter and integrator so a future guidance law could drive
// them without any structural change. Runs third in the pipeline, after
// guidance and before kinematics.
func RunAttitude(w *world.World, dt float64) {
	for _, id := range w.Propelled() {
		if !w.IsAlive(id) {
			continue
		}
		att := w.Attitude(id)
		if att == nil {
			continue
		}

		thetaDotFilt := att.ThetaDotFilt
		psiDotFilt := att.PsiDotFilt
		if att.ThetaFilter != nil {
			thetaDotFilt = att.ThetaFilter.Update(att.ThetaDotCmd, dt)
		}
		if att.PsiFilter != nil {
			psiDotFilt = att.PsiFilter.Update(att.PsiDotCmd, dt)
		}

		if !att.Bootstrapped() {
			att.ThetaDotFiltPrev = thetaDotFilt
			att.PsiDotFiltPrev = psiDotFilt
			att.MarkBootstrapped()
		}

		nextTheta := ab2(att.Theta, thetaDotFilt, att.ThetaDotFiltPrev, dt)
		nextPsi := ab2(att.Psi, psiDotFilt, att.PsiDotFiltPrev, dt)

		att.ThetaDotFiltPrev = thetaDotFilt
		att.PsiDotFiltPrev = psiDotFilt
		att.ThetaDotFilt = thetaDotFilt
		att.PsiDotFilt = psiDotFilt
		att.Theta = nextTheta
		att.Psi = nextPsi
	}
}
